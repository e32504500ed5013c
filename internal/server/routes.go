package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewEngine builds the gin engine with recovery, CORS and every route mounted.
func NewEngine(deps *Deps, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(origins)))
	SetupRoutes(r, deps)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func SetupRoutes(r *gin.Engine, deps *Deps) {
	r.GET("/healthz", Health(deps))

	// transactions
	r.POST("/tx", SubmitTx(deps))
	r.GET("/tx/:id", GetReceipt(deps))

	proposals := r.Group("/proposals")
	{
		proposals.GET("", ListProposals(deps))
		proposals.GET("/:id", GetProposal(deps))
		proposals.GET("/:id/votes", ListProposalVotes(deps))
	}

	nfts := r.Group("/nfts")
	{
		nfts.GET("", ListNFTs(deps))
		nfts.GET("/:id", GetNFT(deps))
	}

	r.GET("/accounts/:address", GetAccount(deps))
	r.GET("/treasury", GetTreasury(deps))
	r.GET("/sales", ListSales(deps))
	r.GET("/events", ListEvents(deps))
	r.GET("/collection", GetCollection(deps))
}
