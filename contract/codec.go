package contract

import (
	"bytes"
	"encoding/binary"
	"errors"

	"dominion_dao/sdk"
)

type binWriter struct {
	buf bytes.Buffer
}

// newWriter spins up a fresh writer so we dont leak old bytes between encodes.
func newWriter() *binWriter { return &binWriter{} }

// bytes returns the accumulated buffer, tiny helper but keeps code tidy.
func (w *binWriter) bytes() []byte { return w.buf.Bytes() }

// writeBool squashes bools into a single byte flag for deterministic payloads.
func (w *binWriter) writeBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

// writeUint64 writes big endian numbers so tooling can read them without guessing.
func (w *binWriter) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// writeInt64 reuses the uint routine since casting keeps the sign bits intact.
func (w *binWriter) writeInt64(v int64) {
	w.writeUint64(uint64(v))
}

// writeVarUint uses varints to keep counts and lens compact.
func (w *binWriter) writeVarUint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.Write(tmp[:n])
}

// writeAmount keeps amount scaling consistent via a single call site.
func (w *binWriter) writeAmount(v Amount) {
	w.writeInt64(int64(v))
}

// writeString prefixes its length then dumps UTF-8 directly.
func (w *binWriter) writeString(s string) {
	w.writeVarUint(uint64(len(s)))
	w.buf.WriteString(s)
}

// writeAddress writes the canonical address string.
func (w *binWriter) writeAddress(a sdk.Address) {
	w.writeString(a.String())
}

// ------------------------------------------------------------------
// Encoders
// ------------------------------------------------------------------

// EncodeConfig packs the genesis parameters.
func EncodeConfig(cfg *Config) []byte {
	w := newWriter()
	w.writeAmount(cfg.StakeThreshold)
	w.writeUint64(cfg.SupplyCap)
	w.writeAddress(cfg.Minter)
	w.writeString(cfg.CollectionName)
	w.writeString(cfg.CollectionSymbol)
	w.writeVarUint(uint64(cfg.MaxRequestBps))
	w.buf.WriteByte(byte(cfg.VoteWeight))
	w.writeString(cfg.NativeAsset.String())
	return w.bytes()
}

// EncodeAccount serializes an account; voted ids stay in the voter index.
// Example payload: EncodeAccount(&Account{Address: "hive:alice", ContributionTotal: FloatToAmount(3.5)})
func EncodeAccount(a *Account) []byte {
	w := newWriter()
	w.writeAddress(a.Address)
	w.writeAmount(a.ContributionTotal)
	w.writeAmount(a.Balance)
	w.writeBool(a.IsStakeholder)
	w.writeInt64(a.CreatedAt)
	w.writeVarUint(a.VoteCount)
	return w.bytes()
}

// EncodeProposal turns a Proposal into bytes so we can persist votes without json overhead.
// Example payload: EncodeProposal(&Proposal{ID: 3, Title: "add funds"})
func EncodeProposal(p *Proposal) []byte {
	w := newWriter()
	w.writeUint64(p.ID)
	w.writeAddress(p.Proposer)
	w.writeAddress(p.Beneficiary)
	w.writeString(p.Title)
	w.writeString(p.Description)
	w.writeAmount(p.RequestedAmount)
	w.writeAmount(p.RaisedAmount)
	w.writeAmount(p.Upvotes)
	w.writeAmount(p.Downvotes)
	w.writeUint64(p.VoterCount)
	w.writeInt64(p.CreatedAt)
	w.writeInt64(p.DurationSeconds)
	w.writeBool(p.Executed)
	w.writeBool(p.Passed)
	w.writeAmount(p.PayoutAmount)
	w.writeInt64(p.ExecutedAt)
	w.writeString(p.Tx)
	return w.bytes()
}

// EncodeVoteReceipt stores choice and weight so tallies can be replayed from receipts.
func EncodeVoteReceipt(v *VoteReceipt) []byte {
	w := newWriter()
	w.writeUint64(v.ProposalID)
	w.writeAddress(v.Voter)
	w.buf.WriteByte(byte(v.Choice))
	w.writeAmount(v.Weight)
	w.writeInt64(v.VotedAt)
	return w.bytes()
}

// EncodeNFT packs a token record.
func EncodeNFT(n *NFT) []byte {
	w := newWriter()
	w.writeUint64(n.TokenID)
	w.writeAddress(n.Owner)
	w.writeAddress(n.Creator)
	w.writeString(n.MetadataURI)
	w.writeAmount(n.Price)
	w.writeVarUint(uint64(n.RoyaltyBps))
	w.writeBool(n.ForSale)
	w.writeInt64(n.MintedAt)
	w.writeUint64(n.SaleCount)
	return w.bytes()
}

// EncodeSale packs a settlement record.
func EncodeSale(s *Sale) []byte {
	w := newWriter()
	w.writeUint64(s.ID)
	w.writeUint64(s.TokenID)
	w.writeAddress(s.Seller)
	w.writeAddress(s.Buyer)
	w.writeAddress(s.Creator)
	w.writeAmount(s.Price)
	w.writeAmount(s.Paid)
	w.writeAmount(s.Royalty)
	w.writeAmount(s.SellerProceeds)
	w.writeInt64(s.Timestamp)
	w.writeString(s.Tx)
	return w.bytes()
}

// EncodeTreasury packs the treasury totals.
func EncodeTreasury(t *TreasuryState) []byte {
	w := newWriter()
	w.writeAmount(t.Balance)
	w.writeAmount(t.TotalContributed)
	w.writeAmount(t.TotalPaidOut)
	return w.bytes()
}

func encodeEvent(w *binWriter, e *Event) {
	w.writeUint64(e.Seq)
	w.writeString(string(e.Type))
	w.writeString(e.Tx)
	w.writeInt64(e.Timestamp)
	w.writeUint64(e.ID)
	w.writeAddress(e.Address)
	w.writeAmount(e.Amount)
	w.writeAmount(e.Total)
	w.writeInt64(e.Deadline)
	w.buf.WriteByte(byte(e.Choice))
	w.writeBool(e.Flag)
}

// EncodeEvent packs one committed event.
func EncodeEvent(e *Event) []byte {
	w := newWriter()
	encodeEvent(w, e)
	return w.bytes()
}

// EncodeReceipt packs a transaction receipt and the events it committed.
func EncodeReceipt(r *Receipt) []byte {
	w := newWriter()
	w.writeString(r.TxID)
	w.writeString(r.Action)
	w.writeAddress(r.Sender)
	w.writeBool(r.Success)
	w.writeString(r.Result)
	w.buf.WriteByte(byte(r.ErrKind))
	w.writeString(r.ErrCode)
	w.writeString(r.ErrMsg)
	w.writeInt64(r.Timestamp)
	w.writeVarUint(uint64(len(r.Events)))
	for i := range r.Events {
		encodeEvent(w, &r.Events[i])
	}
	return w.bytes()
}

// ------------------------------------------------------------------
// Decoder helpers
// ------------------------------------------------------------------

type binReader struct {
	data []byte
	pos  int
	err  error
}

// newReader wraps raw bytes so we can peek sequentially w/out copying.
func newReader(data []byte) *binReader {
	return &binReader{data: data}
}

// The read helpers record the first failure and return zero values afterwards,
// so decoders read straight through and check r.err once at the end.

func (r *binReader) fail(msg string) {
	if r.err == nil {
		r.err = errors.New(msg)
	}
}

// readByte grabs the next byte and bumps the cursor.
func (r *binReader) readByte() byte {
	if r.err != nil {
		return 0
	}
	if r.pos >= len(r.data) {
		r.fail("unexpected EOF")
		return 0
	}
	b := r.data[r.pos]
	r.pos++
	return b
}

// readBool restores bools stored via writeBool above.
func (r *binReader) readBool() bool {
	return r.readByte() == 1
}

// readUint64 decodes big endian integers for ids and totals.
func (r *binReader) readUint64() uint64 {
	if r.err != nil {
		return 0
	}
	if r.pos+8 > len(r.data) {
		r.fail("unexpected EOF")
		return 0
	}
	val := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return val
}

// readInt64 simply casts the unsigned read, matching the writer logic.
func (r *binReader) readInt64() int64 {
	return int64(r.readUint64())
}

// readVarUint undoes the compact varint encoding for lengths/counts.
func (r *binReader) readVarUint() uint64 {
	if r.err != nil {
		return 0
	}
	val, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		r.fail("invalid varuint")
		return 0
	}
	r.pos += n
	return val
}

// readAmount rebuilds an Amount using the int64 path so scaling stays synced.
func (r *binReader) readAmount() Amount {
	return Amount(r.readInt64())
}

// readString reads the varint length then slices out the utf8 chunk.
func (r *binReader) readString() string {
	l := r.readVarUint()
	if r.err != nil {
		return ""
	}
	if l > uint64(len(r.data)-r.pos) {
		r.fail("unexpected EOF")
		return ""
	}
	s := string(r.data[r.pos : r.pos+int(l)])
	r.pos += int(l)
	return s
}

func (r *binReader) readAddress() sdk.Address {
	return sdk.Address(r.readString())
}

// ------------------------------------------------------------------
// Decoders
// ------------------------------------------------------------------

// DecodeConfig is the inverse of EncodeConfig and keeps the same field order.
func DecodeConfig(data []byte) (*Config, error) {
	r := newReader(data)
	cfg := &Config{
		StakeThreshold:   r.readAmount(),
		SupplyCap:        r.readUint64(),
		Minter:           r.readAddress(),
		CollectionName:   r.readString(),
		CollectionSymbol: r.readString(),
		MaxRequestBps:    uint32(r.readVarUint()),
		VoteWeight:       VoteWeightMode(r.readByte()),
		NativeAsset:      sdk.Asset(r.readString()),
	}
	if r.err != nil {
		return nil, r.err
	}
	return cfg, nil
}

// DecodeAccount rebuilds an account record.
func DecodeAccount(data []byte) (*Account, error) {
	r := newReader(data)
	a := &Account{
		Address:           r.readAddress(),
		ContributionTotal: r.readAmount(),
		Balance:           r.readAmount(),
		IsStakeholder:     r.readBool(),
		CreatedAt:         r.readInt64(),
		VoteCount:         r.readVarUint(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return a, nil
}

// DecodeProposal mirrors EncodeProposal.
func DecodeProposal(data []byte) (*Proposal, error) {
	r := newReader(data)
	p := &Proposal{
		ID:              r.readUint64(),
		Proposer:        r.readAddress(),
		Beneficiary:     r.readAddress(),
		Title:           r.readString(),
		Description:     r.readString(),
		RequestedAmount: r.readAmount(),
		RaisedAmount:    r.readAmount(),
		Upvotes:         r.readAmount(),
		Downvotes:       r.readAmount(),
		VoterCount:      r.readUint64(),
		CreatedAt:       r.readInt64(),
		DurationSeconds: r.readInt64(),
		Executed:        r.readBool(),
		Passed:          r.readBool(),
		PayoutAmount:    r.readAmount(),
		ExecutedAt:      r.readInt64(),
		Tx:              r.readString(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

// DecodeVoteReceipt mirrors EncodeVoteReceipt.
func DecodeVoteReceipt(data []byte) (*VoteReceipt, error) {
	r := newReader(data)
	v := &VoteReceipt{
		ProposalID: r.readUint64(),
		Voter:      r.readAddress(),
		Choice:     Choice(r.readByte()),
		Weight:     r.readAmount(),
		VotedAt:    r.readInt64(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return v, nil
}

// DecodeNFT mirrors EncodeNFT.
func DecodeNFT(data []byte) (*NFT, error) {
	r := newReader(data)
	n := &NFT{
		TokenID:     r.readUint64(),
		Owner:       r.readAddress(),
		Creator:     r.readAddress(),
		MetadataURI: r.readString(),
		Price:       r.readAmount(),
		RoyaltyBps:  uint32(r.readVarUint()),
		ForSale:     r.readBool(),
		MintedAt:    r.readInt64(),
		SaleCount:   r.readUint64(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return n, nil
}

// DecodeSale mirrors EncodeSale.
func DecodeSale(data []byte) (*Sale, error) {
	r := newReader(data)
	s := &Sale{
		ID:             r.readUint64(),
		TokenID:        r.readUint64(),
		Seller:         r.readAddress(),
		Buyer:          r.readAddress(),
		Creator:        r.readAddress(),
		Price:          r.readAmount(),
		Paid:           r.readAmount(),
		Royalty:        r.readAmount(),
		SellerProceeds: r.readAmount(),
		Timestamp:      r.readInt64(),
		Tx:             r.readString(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return s, nil
}

// DecodeTreasury mirrors EncodeTreasury.
func DecodeTreasury(data []byte) (*TreasuryState, error) {
	r := newReader(data)
	t := &TreasuryState{
		Balance:          r.readAmount(),
		TotalContributed: r.readAmount(),
		TotalPaidOut:     r.readAmount(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return t, nil
}

func decodeEvent(r *binReader) Event {
	return Event{
		Seq:       r.readUint64(),
		Type:      EventType(r.readString()),
		Tx:        r.readString(),
		Timestamp: r.readInt64(),
		ID:        r.readUint64(),
		Address:   r.readAddress(),
		Amount:    r.readAmount(),
		Total:     r.readAmount(),
		Deadline:  r.readInt64(),
		Choice:    Choice(r.readByte()),
		Flag:      r.readBool(),
	}
}

// DecodeEvent mirrors EncodeEvent.
func DecodeEvent(data []byte) (*Event, error) {
	r := newReader(data)
	e := decodeEvent(r)
	if r.err != nil {
		return nil, r.err
	}
	return &e, nil
}

// DecodeReceipt mirrors EncodeReceipt and restores the typed error.
func DecodeReceipt(data []byte) (*Receipt, error) {
	r := newReader(data)
	rc := &Receipt{
		TxID:      r.readString(),
		Action:    r.readString(),
		Sender:    r.readAddress(),
		Success:   r.readBool(),
		Result:    r.readString(),
		ErrKind:   ErrorKind(r.readByte()),
		ErrCode:   r.readString(),
		ErrMsg:    r.readString(),
		Timestamp: r.readInt64(),
	}
	n := r.readVarUint()
	for i := uint64(0); i < n && r.err == nil; i++ {
		rc.Events = append(rc.Events, decodeEvent(r))
	}
	if r.err != nil {
		return nil, r.err
	}
	if !rc.Success && rc.ErrCode != "" {
		rc.Err = &Error{Kind: rc.ErrKind, Code: rc.ErrCode, Msg: rc.ErrMsg}
	}
	return rc, nil
}
