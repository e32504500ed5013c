package contract

import (
	"fmt"
	"strconv"
	"strings"

	"dominion_dao/sdk"
)

// splitPayload unwraps the payload and splits it on '|', padding to n fields.
func splitPayload(payload string, n int, errMsg string) ([]string, error) {
	raw, err := unwrapPayload(payload, errMsg)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(raw, "|")
	for len(parts) < n {
		parts = append(parts, "")
	}
	return parts, nil
}

// unwrapPayload trims quotes and whitespace, failing if the payload is empty.
func unwrapPayload(payload string, errMsg string) (string, error) {
	raw := strings.TrimSpace(payload)
	if len(raw) >= 2 {
		first := raw[0]
		last := raw[len(raw)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			if unquoted, err := strconv.Unquote(raw); err == nil {
				raw = strings.TrimSpace(unquoted)
			} else {
				raw = strings.TrimSpace(raw[1 : len(raw)-1])
			}
		}
	}
	if raw == "" {
		return "", ErrInvalidPayload.With(errMsg)
	}
	return raw, nil
}

// parseUintField trims the input and fails with a friendly field name on errors.
func parseUintField(val string, field string) (uint64, error) {
	val = strings.TrimSpace(val)
	n, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrInvalidPayload.With(fmt.Sprintf("invalid %s", field))
	}
	return n, nil
}

// parseAmountField reads a decimal value like "5" or "5.250" into an Amount.
func parseAmountField(val string, field string) (Amount, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, ErrInvalidPayload.With(fmt.Sprintf("invalid %s", field))
	}
	a, ok := parseAmount(f)
	if !ok {
		return 0, ErrAmountOverflow.With(fmt.Sprintf("%s out of range", field))
	}
	return a, nil
}

// parseChoiceField accepts a couple of keywords for either side of a vote.
func parseChoiceField(val string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "accept", "yes", "y", "true", "1":
		return ChoiceAccept, nil
	case "reject", "no", "n", "false", "0":
		return ChoiceReject, nil
	}
	return 0, ErrInvalidChoice
}

// decodeContributeArgs reads the optional proposal id a contribution is earmarked for.
func decodeContributeArgs(payload string) (*uint64, error) {
	raw := strings.TrimSpace(payload)
	if raw == "" || raw == `""` || raw == "''" {
		return nil, nil
	}
	id, err := parseUintField(strings.Trim(raw, `"'`), "proposal id")
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// decodeCreateProposalArgs expects `title|description|beneficiary|amount|durationSeconds`.
func decodeCreateProposalArgs(payload string) (*CreateProposalArgs, error) {
	parts, err := splitPayload(payload, 5, "proposal payload missing")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountField(parts[3], "amount")
	if err != nil {
		return nil, err
	}
	duration, err := strconv.ParseInt(strings.TrimSpace(parts[4]), 10, 64)
	if err != nil {
		return nil, ErrInvalidPayload.With("invalid duration")
	}
	return &CreateProposalArgs{
		Title:           strings.TrimSpace(parts[0]),
		Description:     strings.TrimSpace(parts[1]),
		Beneficiary:     sdk.Address(strings.TrimSpace(parts[2])),
		RequestedAmount: amount,
		DurationSeconds: duration,
	}, nil
}

// decodeVoteArgs expects `proposalId|accept`.
func decodeVoteArgs(payload string) (uint64, Choice, error) {
	parts, err := splitPayload(payload, 2, "vote payload missing")
	if err != nil {
		return 0, 0, err
	}
	id, err := parseUintField(parts[0], "proposal id")
	if err != nil {
		return 0, 0, err
	}
	choice, err := parseChoiceField(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return id, choice, nil
}

// decodeIDArg reads a payload made of a single id.
func decodeIDArg(payload string, field string) (uint64, error) {
	raw, err := unwrapPayload(payload, field+" missing")
	if err != nil {
		return 0, err
	}
	return parseUintField(raw, field)
}

// decodeMintArgs expects `metadataURI|royaltyBps`; the royalty defaults to 0.
func decodeMintArgs(payload string) (string, uint32, error) {
	raw, err := unwrapPayload(payload, "mint payload missing")
	if err != nil {
		return "", 0, err
	}
	// uris may contain '|' themselves, the royalty is always the last field
	uri := raw
	var bps uint64
	if i := strings.LastIndex(raw, "|"); i >= 0 {
		uri = raw[:i]
		field := strings.TrimSpace(raw[i+1:])
		if field != "" {
			bps, err = strconv.ParseUint(field, 10, 32)
			if err != nil {
				return "", 0, ErrInvalidRoyalty.With("invalid royalty bps")
			}
		}
	}
	if bps > BpsDenominator {
		return "", 0, ErrInvalidRoyalty
	}
	return strings.TrimSpace(uri), uint32(bps), nil
}

// decodePriceArgs expects `tokenId|price`.
func decodePriceArgs(payload string) (uint64, Amount, error) {
	parts, err := splitPayload(payload, 2, "listing payload missing")
	if err != nil {
		return 0, 0, err
	}
	id, err := parseUintField(parts[0], "token id")
	if err != nil {
		return 0, 0, err
	}
	price, err := parseAmountField(parts[1], "price")
	if err != nil {
		return 0, 0, ErrInvalidPrice.With("invalid price")
	}
	return id, price, nil
}
