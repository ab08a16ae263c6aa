package api

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/registry", s.handleGetRegistry)
		v1.GET("/balances/:address/*denom", s.handleGetBalance)

		// Pool routes (public read, protected write)
		pools := v1.Group("/pools")
		{
			pools.GET("", s.handleGetPools)
			pools.GET("/:pool_id", s.handleGetPool)
			pools.GET("/:pool_id/quote", s.handleGetQuote)
			pools.GET("/:pool_id/investors/:address", s.handleGetInvestor)

			poolsProtected := pools.Group("")
			poolsProtected.Use(s.AuthMiddleware())
			{
				poolsProtected.POST("/:pool_id/invest", s.handleInvest)
				poolsProtected.POST("/:pool_id/swap", s.handleSwap)
				poolsProtected.POST("/:pool_id/claim", s.handleClaimProfit)
				poolsProtected.POST("/:pool_id/withdraw", s.handleWithdraw)
			}
		}

		v1.POST("/faucet", s.AuthMiddleware(), s.handleFaucet)

		admin := v1.Group("/admin")
		admin.Use(s.AuthMiddleware(), AdminMiddleware(), AuditMiddleware(s.logger))
		{
			admin.POST("/init", s.handleInitialize)
			admin.POST("/pools", s.handleCreatePool)
			admin.POST("/pools/:pool_id/close", s.handleClosePool)
		}
	}
}
