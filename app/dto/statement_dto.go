package dto

// StatementResponse is the rendered transaction-history statement, newest
// first, with the header the original desktop view showed.
type StatementResponse struct {
	AccountNumber     int    `json:"account_number"`
	AccountHolder     string `json:"account_holder"`
	AccountType       string `json:"account_type"`
	Balance           string `json:"balance"`
	TotalTransactions int    `json:"total_transactions"`
	Content           string `json:"content"`
}
