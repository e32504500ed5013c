package contract

import (
	"fmt"
	"strconv"

	"dominion_dao/sdk"
)

// EventType is the short tag that prefixes every event log line.
type EventType string

const (
	EventProposalCreated      EventType = "pc"
	EventVoteCast             EventType = "v"
	EventProposalExecuted     EventType = "px"
	EventContributionRecorded EventType = "cr"
	EventNFTMinted            EventType = "nm"
	EventNFTListed            EventType = "nl"
	EventNFTUnlisted          EventType = "nu"
	EventNFTSold              EventType = "ns"
)

// Name returns the long form of the tag used in json output.
func (t EventType) Name() string {
	switch t {
	case EventProposalCreated:
		return "ProposalCreated"
	case EventVoteCast:
		return "VoteCast"
	case EventProposalExecuted:
		return "ProposalExecuted"
	case EventContributionRecorded:
		return "ContributionRecorded"
	case EventNFTMinted:
		return "NFTMinted"
	case EventNFTListed:
		return "NFTListed"
	case EventNFTUnlisted:
		return "NFTUnlisted"
	case EventNFTSold:
		return "NFTSold"
	}
	return string(t)
}

// Event is one committed state change. Which fields are meaningful depends on Type:
//
//	pc  ID=proposal Address=beneficiary Amount=requested Deadline
//	v   ID=proposal Address=voter Choice Amount=weight
//	px  ID=proposal Flag=passed Amount=payout
//	cr  Address=contributor Amount Total=contribution total Flag=stakeholder
//	nm  ID=token Address=creator
//	nl  ID=token Address=owner Amount=price
//	nu  ID=token Address=owner
//	ns  ID=token Address=buyer Amount=price
type Event struct {
	Seq       uint64
	Type      EventType
	Tx        string
	Timestamp int64
	ID        uint64
	Address   sdk.Address
	Amount    Amount
	Total     Amount
	Deadline  int64
	Choice    Choice
	Flag      bool
}

// String renders the terse pipe line watchers parse, e.g. "pc|id:3|to:hive:bob|am:5.000|dl:1700000600".
func (e Event) String() string {
	switch e.Type {
	case EventProposalCreated:
		return fmt.Sprintf("pc|id:%d|to:%s|am:%s|dl:%s", e.ID, e.Address, e.Amount, strconv.FormatInt(e.Deadline, 10))
	case EventVoteCast:
		return fmt.Sprintf("v|id:%d|by:%s|c:%s|w:%s", e.ID, e.Address, e.Choice, e.Amount)
	case EventProposalExecuted:
		return fmt.Sprintf("px|id:%d|p:%s|am:%s", e.ID, strconv.FormatBool(e.Flag), e.Amount)
	case EventContributionRecorded:
		return fmt.Sprintf("cr|by:%s|am:%s|t:%s|s:%s", e.Address, e.Amount, e.Total, strconv.FormatBool(e.Flag))
	case EventNFTMinted:
		return fmt.Sprintf("nm|id:%d|by:%s", e.ID, e.Address)
	case EventNFTListed:
		return fmt.Sprintf("nl|id:%d|by:%s|pr:%s", e.ID, e.Address, e.Amount)
	case EventNFTUnlisted:
		return fmt.Sprintf("nu|id:%d|by:%s", e.ID, e.Address)
	case EventNFTSold:
		return fmt.Sprintf("ns|id:%d|to:%s|pr:%s", e.ID, e.Address, e.Amount)
	}
	return string(e.Type)
}

// emit queues an event on the running transaction; it is persisted only on commit.
func (x *execCtx) emit(e Event) {
	e.Tx = x.txID()
	e.Timestamp = x.now()
	x.events = append(x.events, e)
}

// emitProposalCreated keeps observers updated with a short pc line for every new idea.
func (x *execCtx) emitProposalCreated(p *Proposal) {
	x.emit(Event{Type: EventProposalCreated, ID: p.ID, Address: p.Beneficiary, Amount: p.RequestedAmount, Deadline: p.Deadline()})
}

// emitVoteCast includes choice plus weight so the tally can be replayed from logs only.
func (x *execCtx) emitVoteCast(id uint64, voter sdk.Address, choice Choice, weight Amount) {
	x.emit(Event{Type: EventVoteCast, ID: id, Address: voter, Choice: choice, Amount: weight})
}

// emitProposalExecuted carries the final outcome, including a downgraded pass.
func (x *execCtx) emitProposalExecuted(id uint64, res TallyResult) {
	x.emit(Event{Type: EventProposalExecuted, ID: id, Flag: res.Passed, Amount: res.PayoutAmount})
}

// emitContributionRecorded tells indexers whether the contributor crossed the stake threshold.
func (x *execCtx) emitContributionRecorded(acc *Account, amount Amount) {
	x.emit(Event{Type: EventContributionRecorded, Address: acc.Address, Amount: amount, Total: acc.ContributionTotal, Flag: acc.IsStakeholder})
}

func (x *execCtx) emitNFTMinted(n *NFT) {
	x.emit(Event{Type: EventNFTMinted, ID: n.TokenID, Address: n.Creator})
}

func (x *execCtx) emitNFTListed(n *NFT) {
	x.emit(Event{Type: EventNFTListed, ID: n.TokenID, Address: n.Owner, Amount: n.Price})
}

func (x *execCtx) emitNFTUnlisted(n *NFT) {
	x.emit(Event{Type: EventNFTUnlisted, ID: n.TokenID, Address: n.Owner})
}

func (x *execCtx) emitNFTSold(tokenID uint64, buyer sdk.Address, price Amount) {
	x.emit(Event{Type: EventNFTSold, ID: tokenID, Address: buyer, Amount: price})
}

// persistEvents assigns sequence numbers and writes the queued events into st.
func persistEvents(st State, events []Event) {
	if len(events) == 0 {
		return
	}
	seq := getCount(st, EventsCount)
	for i := range events {
		seq++
		events[i].Seq = seq
		st.Set(eventKey(seq), string(EncodeEvent(&events[i])))
	}
	setCount(st, EventsCount, seq)
}

// loadEvents returns up to limit events with a sequence above after.
func loadEvents(st State, after uint64, limit int) ([]Event, error) {
	last := getCount(st, EventsCount)
	out := []Event{}
	for seq := after + 1; seq <= last; seq++ {
		if limit > 0 && len(out) >= limit {
			break
		}
		ptr := st.Get(eventKey(seq))
		if ptr == nil {
			continue
		}
		e, err := DecodeEvent([]byte(*ptr))
		if err != nil {
			return nil, fmt.Errorf("decode event %d: %w", seq, err)
		}
		out = append(out, *e)
	}
	return out, nil
}
