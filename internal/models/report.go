package models

// DailyCount is one point of the daily enquiry trend.
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// MonthlyReport is a derived rollup over the enquiries of one calendar
// month. It holds no persisted state and is recomputed on every request.
type MonthlyReport struct {
	Month              string         `json:"month"` // YYYY-MM
	TotalEnquiries     int            `json:"total_enquiries"`
	TopProductInterest string         `json:"top_product_interest"`
	TopCity            string         `json:"top_city"`
	ProductBreakdown   map[string]int `json:"product_breakdown"`
	CityBreakdown      map[string]int `json:"city_breakdown"`
	DailyTrend         []DailyCount   `json:"daily_trend"`
}
