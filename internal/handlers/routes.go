package handlers

import "github.com/gin-gonic/gin"

// Handlers bundles the API handlers attached by RegisterRoutes.
type Handlers struct {
	Transactions     *TransactionHandler
	TransactionTypes *TransactionTypeHandler
	Summary          *SummaryHandler
}

// RegisterRoutes attaches the authenticated API routes to group.
func RegisterRoutes(group *gin.RouterGroup, h Handlers) {
	transactions := group.Group("/transactions")
	transactions.POST("", h.Transactions.CreateTransaction)
	transactions.GET("", h.Transactions.ListTransactions)
	transactions.GET("/stream", h.Transactions.StreamTransactions)
	transactions.GET("/:id", h.Transactions.GetTransaction)
	transactions.PUT("/:id", h.Transactions.UpdateTransaction)
	transactions.DELETE("/:id", h.Transactions.DeleteTransaction)
	transactions.GET("/:id/series", h.Transactions.GetSeries)

	types := group.Group("/transaction-types")
	types.POST("", h.TransactionTypes.CreateTransactionType)
	types.GET("", h.TransactionTypes.ListTransactionTypes)
	types.GET("/:id", h.TransactionTypes.GetTransactionType)
	types.PUT("/:id", h.TransactionTypes.UpdateTransactionType)
	types.DELETE("/:id", h.TransactionTypes.DeleteTransactionType)

	summary := group.Group("/summary")
	summary.GET("", h.Summary.GetSummary)
	summary.GET("/stream", h.Summary.StreamSummary)
}
