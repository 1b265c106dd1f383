package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createShipmentRequest struct {
	SenderName         string  `json:"sender_name"         validate:"required"`
	SenderPhone        string  `json:"sender_phone"        validate:"required"`
	ReceiverName       string  `json:"receiver_name"       validate:"required"`
	ReceiverPhone      string  `json:"receiver_phone"      validate:"required"`
	PickupLocation     string  `json:"pickup_location"     validate:"required"`
	DeliveryLocation   string  `json:"delivery_location"   validate:"required"`
	PackageDescription string  `json:"package_description" validate:"required"`
	Weight             float64 `json:"weight"              validate:"required,gt=0"`
	Category           string  `json:"category"            validate:"required,oneof=documents electronics clothing food fragile other"`
}

type updateShipmentRequest struct {
	Status            *string    `json:"status,omitempty"`
	CurrentLocation   *string    `json:"current_location,omitempty"`
	Weight            *float64   `json:"weight,omitempty"`
	Category          *string    `json:"category,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
}

type timelineEventRequest struct {
	Location    string `json:"location"`
	Description string `json:"description"`
}

// --- Response types ---
// These are intentionally separate from ports/domain types so the JSON
// contract is not coupled to internal service changes.

type timelineEventResponse struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
}

type routePointResponse struct {
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

type routeResponse struct {
	Origin          routePointResponse `json:"origin"`
	Current         routePointResponse `json:"current"`
	Destination     routePointResponse `json:"destination"`
	ProgressPercent int                `json:"progress_percent"`
}

type shipmentResponse struct {
	TrackingID         string                  `json:"tracking_id"`
	SenderName         string                  `json:"sender_name"`
	SenderPhone        string                  `json:"sender_phone"`
	ReceiverName       string                  `json:"receiver_name"`
	ReceiverPhone      string                  `json:"receiver_phone"`
	PickupLocation     string                  `json:"pickup_location"`
	DeliveryLocation   string                  `json:"delivery_location"`
	CurrentLocation    string                  `json:"current_location"`
	PackageDescription string                  `json:"package_description"`
	Weight             float64                 `json:"weight"`
	Category           string                  `json:"category"`
	Status             string                  `json:"status"`
	StatusDescription  string                  `json:"status_description"`
	ProgressPercent    int                     `json:"progress_percent"`
	EstimatedDelivery  time.Time               `json:"estimated_delivery"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
	Timeline           []timelineEventResponse `json:"timeline"`
	Route              routeResponse           `json:"route"`
}

type listShipmentsResponse struct {
	Data  []shipmentResponse `json:"data"`
	Total int                `json:"total"`
}

// --- Tickets ---

type createTicketRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Subject  string `json:"subject"  validate:"required"`
	Message  string `json:"message"  validate:"required"`
	Category string `json:"category"`
}

type updateTicketStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ticketResponseRequest struct {
	Message string `json:"message" validate:"required"`
	IsAdmin bool   `json:"is_admin"`
}

type ticketReplyResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsAdmin   bool      `json:"is_admin"`
	Timestamp time.Time `json:"timestamp"`
}

type ticketResponse struct {
	TicketID  string                `json:"ticket_id"`
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	Subject   string                `json:"subject"`
	Message   string                `json:"message"`
	Category  string                `json:"category"`
	Status    string                `json:"status"`
	Responses []ticketReplyResponse `json:"responses"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

type listTicketsResponse struct {
	Data  []ticketResponse `json:"data"`
	Total int              `json:"total"`
}

// --- Chat ---

type startChatRequest struct {
	SessionID     string `json:"session_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Language      string `json:"language"`
}

type chatMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type chatStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type chatBotModeRequest struct {
	Enabled bool `json:"enabled"`
}

type chatMessageResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsBot     bool      `json:"is_bot"`
	IsAgent   bool      `json:"is_agent"`
	Timestamp time.Time `json:"timestamp"`
}

type chatSessionResponse struct {
	SessionID     string                `json:"session_id"`
	CustomerName  string                `json:"customer_name"`
	CustomerEmail string                `json:"customer_email,omitempty"`
	Language      string                `json:"language"`
	Status        string                `json:"status"`
	IsBot         bool                  `json:"is_bot"`
	UnreadCount   int                   `json:"unread_count"`
	Version       int64                 `json:"version"`
	Messages      []chatMessageResponse `json:"messages"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type listChatSessionsResponse struct {
	Data  []chatSessionResponse `json:"data"`
	Total int                   `json:"total"`
}

// --- Analytics ---

type namedCountResponse struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type weeklyTrendPointResponse struct {
	Day       string `json:"day"`
	Shipments int    `json:"shipments"`
	Delivered int    `json:"delivered"`
}

type analyticsResponse struct {
	Total                int                        `json:"total"`
	Delivered            int                        `json:"delivered"`
	InTransit            int                        `json:"in_transit"`
	Pending              int                        `json:"pending"`
	PickedUp             int                        `json:"picked_up"`
	DeliveryRate         string                     `json:"delivery_rate"`
	OnTimeRate           string                     `json:"on_time_rate"`
	AvgDeliveryDays      string                     `json:"avg_delivery_days"`
	StatusDistribution   []namedCountResponse       `json:"status_distribution"`
	WeeklyTrend          []weeklyTrendPointResponse `json:"weekly_trend"`
	CategoryDistribution []namedCountResponse       `json:"category_distribution"`
}
