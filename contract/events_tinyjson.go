package contract

import (
	"github.com/CosmWasm/tinyjson"
	"github.com/CosmWasm/tinyjson/jwriter"
)

var _ tinyjson.Marshaler = Event{}

// MarshalTinyJSON writes the event with field names that depend on its type, so
// consumers see {"type":"NFTSold","tokenId":0,"buyer":...} rather than the raw slots.
func (e Event) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawString(`{"seq":`)
	w.Uint64(e.Seq)
	w.RawString(`,"type":`)
	w.String(e.Type.Name())
	w.RawString(`,"tx":`)
	w.String(e.Tx)
	w.RawString(`,"timestamp":`)
	w.Int64(e.Timestamp)
	switch e.Type {
	case EventProposalCreated:
		w.RawString(`,"proposalId":`)
		w.Uint64(e.ID)
		w.RawString(`,"beneficiary":`)
		w.String(e.Address.String())
		w.RawString(`,"amount":`)
		w.String(e.Amount.String())
		w.RawString(`,"deadline":`)
		w.Int64(e.Deadline)
	case EventVoteCast:
		w.RawString(`,"proposalId":`)
		w.Uint64(e.ID)
		w.RawString(`,"voter":`)
		w.String(e.Address.String())
		w.RawString(`,"choice":`)
		w.String(e.Choice.String())
		w.RawString(`,"weight":`)
		w.String(e.Amount.String())
	case EventProposalExecuted:
		w.RawString(`,"proposalId":`)
		w.Uint64(e.ID)
		w.RawString(`,"passed":`)
		w.Bool(e.Flag)
		w.RawString(`,"payoutAmount":`)
		w.String(e.Amount.String())
	case EventContributionRecorded:
		w.RawString(`,"address":`)
		w.String(e.Address.String())
		w.RawString(`,"amount":`)
		w.String(e.Amount.String())
		w.RawString(`,"total":`)
		w.String(e.Total.String())
		w.RawString(`,"stakeholder":`)
		w.Bool(e.Flag)
	case EventNFTMinted:
		w.RawString(`,"tokenId":`)
		w.Uint64(e.ID)
		w.RawString(`,"creator":`)
		w.String(e.Address.String())
	case EventNFTListed:
		w.RawString(`,"tokenId":`)
		w.Uint64(e.ID)
		w.RawString(`,"owner":`)
		w.String(e.Address.String())
		w.RawString(`,"price":`)
		w.String(e.Amount.String())
	case EventNFTUnlisted:
		w.RawString(`,"tokenId":`)
		w.Uint64(e.ID)
		w.RawString(`,"owner":`)
		w.String(e.Address.String())
	case EventNFTSold:
		w.RawString(`,"tokenId":`)
		w.Uint64(e.ID)
		w.RawString(`,"buyer":`)
		w.String(e.Address.String())
		w.RawString(`,"price":`)
		w.String(e.Amount.String())
	}
	w.RawByte('}')
}

// MarshalJSON lets encoding/json and gin render events through the writer above.
func (e Event) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	e.MarshalTinyJSON(&w)
	return w.BuildBytes()
}
