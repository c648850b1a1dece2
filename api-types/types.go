package types

import "time"

type Asset struct {
	AssetID       string  `json:"assetId"`
	UserID        string  `json:"userId"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	AssetType     string  `json:"assetType"`
	CurrentPrice  float64 `json:"currentPrice"`
	PreviousClose float64 `json:"previousClose"`
	Quantity      float64 `json:"quantity"`
	AverageCost   float64 `json:"averageCost"`

	CurrentValue          float64 `json:"currentValue"`
	CostBasis             float64 `json:"costBasis"`
	UnrealizedGain        float64 `json:"unrealizedGain"`
	UnrealizedGainPercent float64 `json:"unrealizedGainPercent"`
	DayChange             float64 `json:"dayChange"`
	DayChangePercent      float64 `json:"dayChangePercent"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Transaction struct {
	TransactionID string    `json:"transactionId"`
	UserID        string    `json:"userId"`
	AssetID       string    `json:"assetId"`
	Type          string    `json:"type"`
	Quantity      float64   `json:"quantity"`
	PricePerUnit  float64   `json:"pricePerUnit"`
	Date          time.Time `json:"date"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Position struct {
	Quantity    float64 `json:"quantity"`
	AverageCost float64 `json:"averageCost"`
}

type NewTransaction struct {
	Type         string    `json:"type"`
	Quantity     float64   `json:"quantity"`
	PricePerUnit float64   `json:"pricePerUnit"`
	Date         time.Time `json:"date"`
	Notes        *string   `json:"notes,omitempty"`
}

type CreateAssetRequest struct {
	UserID        string  `json:"userId"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	AssetType     string  `json:"assetType"`
	CurrentPrice  float64 `json:"currentPrice"`
	PreviousClose float64 `json:"previousClose"`
	Quantity      float64 `json:"quantity"`
	AverageCost   float64 `json:"averageCost"`

	// InitialPurchase optionally records the opening buy; when set, the
	// derived position overrides the manual quantity/averageCost.
	InitialPurchase *NewTransaction `json:"initialPurchase,omitempty"`
}

type CreateAssetResponse struct {
	Asset Asset `json:"asset"`
}

type ListAssetsResponse struct {
	Assets []Asset `json:"assets"`
}

type UpdatePricesRequest struct {
	CurrentPrice  float64 `json:"currentPrice"`
	PreviousClose float64 `json:"previousClose"`
}

type AddTransactionRequest struct {
	UserID  string `json:"userId"`
	AssetID string `json:"assetId"`
	NewTransaction
}

type AddTransactionResponse struct {
	Transaction Transaction `json:"transaction"`
	Position    Position    `json:"position"`
}

type UpdateTransactionRequest struct {
	NewTransaction
}

type UpdateTransactionResponse struct {
	Transaction Transaction `json:"transaction"`
	Position    Position    `json:"position"`
}

type DeleteTransactionResponse struct {
	Position Position `json:"position"`
}

type ListTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type RecalculateAssetResponse struct {
	Position Position `json:"position"`
}

type PortfolioSummary struct {
	TotalValue       float64 `json:"totalValue"`
	TotalInvested    float64 `json:"totalInvested"`
	TotalGain        float64 `json:"totalGain"`
	TotalGainPercent float64 `json:"totalGainPercent"`
	DayGain          float64 `json:"dayGain"`
	DayGainPercent   float64 `json:"dayGainPercent"`
	RealizedGain     float64 `json:"realizedGain"`
}

type Allocation struct {
	AssetType  string  `json:"assetType"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

type GetAllocationsResponse struct {
	Allocations []Allocation `json:"allocations"`
}

type GetPerformersResponse struct {
	Top   []Asset `json:"top"`
	Worst []Asset `json:"worst"`
}
