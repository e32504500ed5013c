package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dominion_dao/contract"
	"dominion_dao/sdk"
)

// maxEventPage caps /events when the caller asks for everything.
const maxEventPage = 500

type submitRequest struct {
	Tx string `json:"tx" binding:"required"`
}

// ---------------- TRANSACTIONS ----------------

func SubmitTx(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input submitRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tx is required"})
			return
		}
		tx, err := deps.Verifier.Verify(input.Tx)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		rc, err := deps.Ledger.Submit(c.Request.Context(), tx)
		if err != nil {
			deps.logf("submit tx %s: %v", tx.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "transaction could not be stored"})
			return
		}
		c.JSON(receiptStatus(rc), rc)
	}
}

func GetReceipt(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, ok, err := deps.Ledger.GetReceipt(c.Param("id"))
		if err != nil {
			fail(c, deps, err)
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "receipt not found"})
			return
		}
		c.JSON(http.StatusOK, rc)
	}
}

// ---------------- PROPOSALS ----------------

func ListProposals(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ps, err := deps.Ledger.GetAllProposals()
		if err != nil {
			fail(c, deps, err)
			return
		}
		now := deps.now()
		out := make([]proposalView, 0, len(ps))
		for _, p := range ps {
			out = append(out, newProposalView(p, now))
		}
		c.JSON(http.StatusOK, out)
	}
}

func GetProposal(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		p, err := deps.Ledger.GetProposal(id)
		if err != nil {
			fail(c, deps, err)
			return
		}
		c.JSON(http.StatusOK, newProposalView(p, deps.now()))
	}
}

func ListProposalVotes(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if _, err := deps.Ledger.GetProposal(id); err != nil {
			fail(c, deps, err)
			return
		}
		votes, err := deps.Ledger.GetProposalVotes(id)
		if err != nil {
			fail(c, deps, err)
			return
		}
		out := make([]voteView, 0, len(votes))
		for _, v := range votes {
			out = append(out, newVoteView(v))
		}
		c.JSON(http.StatusOK, out)
	}
}

// ---------------- NFTS ----------------

func ListNFTs(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ns, err := deps.Ledger.GetAllNFTs()
		if err != nil {
			fail(c, deps, err)
			return
		}
		forSale := c.Query("for_sale") == "true"
		out := make([]nftView, 0, len(ns))
		for _, n := range ns {
			if forSale && !n.ForSale {
				continue
			}
			out = append(out, newNFTView(n))
		}
		c.JSON(http.StatusOK, out)
	}
}

func GetNFT(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		n, err := deps.Ledger.GetNFT(id)
		if err != nil {
			fail(c, deps, err)
			return
		}
		c.JSON(http.StatusOK, newNFTView(n))
	}
}

func ListSales(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sales, err := deps.Ledger.GetSales()
		if err != nil {
			fail(c, deps, err)
			return
		}
		out := make([]saleView, 0, len(sales))
		for _, s := range sales {
			out = append(out, newSaleView(s))
		}
		c.JSON(http.StatusOK, out)
	}
}

func GetCollection(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := deps.Ledger.GetCollection()
		c.JSON(http.StatusOK, collectionView{
			Name:      col.Name,
			Symbol:    col.Symbol,
			Supply:    col.Supply,
			SupplyCap: col.SupplyCap,
			Minter:    col.Minter.String(),
		})
	}
}

// ---------------- LEDGER ----------------

func GetAccount(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr := sdk.Address(c.Param("address"))
		if !addr.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
			return
		}
		acc, known, err := deps.Ledger.GetAccount(addr)
		if err != nil {
			fail(c, deps, err)
			return
		}
		c.JSON(http.StatusOK, newAccountView(acc, known))
	}
}

func GetTreasury(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := deps.Ledger.GetTreasury()
		if err != nil {
			fail(c, deps, err)
			return
		}
		c.JSON(http.StatusOK, treasuryView{
			Balance:          t.Balance.String(),
			TotalContributed: t.TotalContributed.String(),
			TotalPaidOut:     t.TotalPaidOut.String(),
		})
	}
}

func ListEvents(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		after, err := strconv.ParseUint(c.DefaultQuery("after", "0"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "after must be an event sequence"})
			return
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative number"})
			return
		}
		if limit == 0 || limit > maxEventPage {
			limit = maxEventPage
		}
		events, err := deps.Ledger.GetEvents(after, limit)
		if err != nil {
			fail(c, deps, err)
			return
		}
		if events == nil {
			events = []contract.Event{}
		}
		c.JSON(http.StatusOK, events)
	}
}

func Health(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if deps.Stats != nil {
			counts, err := deps.Stats.Counts(c.Request.Context())
			if err != nil {
				deps.logf("health counts: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "store unavailable"})
				return
			}
			body["entries"] = counts
		}
		c.JSON(http.StatusOK, body)
	}
}

// ---------------- HELPERS ----------------

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a number"})
		return 0, false
	}
	return id, true
}

// fail renders ledger errors by kind and hides anything else behind a 500.
func fail(c *gin.Context, deps *Deps, err error) {
	var lerr *contract.Error
	if errors.As(err, &lerr) {
		c.JSON(errorStatus(lerr), gin.H{"error": lerr.Msg, "code": lerr.Code, "kind": lerr.Kind.String()})
		return
	}
	deps.logf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func errorStatus(e *contract.Error) int {
	switch {
	case errors.Is(e, contract.ErrProposalNotFound), errors.Is(e, contract.ErrTokenNotFound):
		return http.StatusNotFound
	}
	switch e.Kind {
	case contract.KindValidation:
		return http.StatusBadRequest
	case contract.KindAuthorization:
		return http.StatusForbidden
	case contract.KindStateConflict:
		return http.StatusConflict
	case contract.KindResource:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// receiptStatus maps a failed receipt to the status of its error; the body is
// always the receipt.
func receiptStatus(rc contract.Receipt) int {
	if rc.Success {
		return http.StatusOK
	}
	var lerr *contract.Error
	if errors.As(rc.Err, &lerr) {
		return errorStatus(lerr)
	}
	return http.StatusBadRequest
}
