package models

// Enquiry represents one row of the Enquiries sheet. Enquiries are append
// only: there is no update or delete path.
type Enquiry struct {
	ID               string `json:"enquiry_id"`
	Timestamp        string `json:"timestamp"` // RFC 3339
	Name             string `json:"name"`
	Company          string `json:"company"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	ProductInterest  string `json:"product_interest"`
	UsageEnvironment string `json:"usage_environment"`
	Quantity         int    `json:"quantity"`
	City             string `json:"city"`
	Notes            string `json:"notes"`
	SourcePage       string `json:"source_page"`
}

// EnquiryInput is the customer-submitted portion of an enquiry. The id and
// timestamp are always server generated.
type EnquiryInput struct {
	Name             string `json:"name" validate:"required"`
	Company          string `json:"company"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required,inmobile"`
	ProductInterest  string `json:"product_interest"`
	UsageEnvironment string `json:"usage_environment"`
	Quantity         int    `json:"quantity" validate:"omitempty,min=1"`
	City             string `json:"city"`
	Notes            string `json:"notes" validate:"omitempty,max=500"`
	SourcePage       string `json:"source_page"`
}

// EnquiryFilters narrows ListAll results. Date bounds are inclusive and
// compared against the enquiry timestamp; City is a case-insensitive
// substring match.
type EnquiryFilters struct {
	StartDate string
	EndDate   string
	City      string
}

// Column indexes for the Enquiries sheet (range Enquiries!A2:L).
const (
	EnquiryColID = iota
	EnquiryColTimestamp
	EnquiryColName
	EnquiryColCompany
	EnquiryColEmail
	EnquiryColPhone
	EnquiryColProductInterest
	EnquiryColUsageEnvironment
	EnquiryColQuantity
	EnquiryColCity
	EnquiryColNotes
	EnquiryColSourcePage
	EnquiryColumnCount
)
