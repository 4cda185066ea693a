package models

// Order status codes. Progress runs pending → confirmed → preparing →
// out_for_delivery → delivered; cancelled is terminal and reachable from
// any non-terminal state.
const (
	StatusPending        = "pending"
	StatusConfirmed      = "confirmed"
	StatusPreparing      = "preparing"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

// statusRank orders the progress statuses for display. Cancelled carries
// no rank.
var statusRank = map[string]int{
	StatusPending:        0,
	StatusConfirmed:      1,
	StatusPreparing:      2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

var statusLabels = map[string]string{
	StatusPending:        "Pending",
	StatusConfirmed:      "Confirmed",
	StatusPreparing:      "Preparing",
	StatusOutForDelivery: "Out for Delivery",
	StatusDelivered:      "Delivered",
	StatusCancelled:      "Cancelled",
}

var statusColors = map[string]string{
	StatusPending:        "#f59e0b",
	StatusConfirmed:      "#3b82f6",
	StatusPreparing:      "#8b5cf6",
	StatusOutForDelivery: "#f97316",
	StatusDelivered:      "#10b981",
	StatusCancelled:      "#ef4444",
}

// statusPhrases are the past-participle forms used in notification text:
// "Your order is now being prepared".
var statusPhrases = map[string]string{
	StatusPending:        "received",
	StatusConfirmed:      "confirmed",
	StatusPreparing:      "being prepared",
	StatusOutForDelivery: "out for delivery",
	StatusDelivered:      "delivered",
}

// KnownStatus reports whether code is one of the six recognised statuses.
func KnownStatus(code string) bool {
	_, ok := statusLabels[code]
	return ok
}

// StatusLabel returns the display label for code, or code itself when
// unrecognised.
func StatusLabel(code string) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return code
}

// StatusColor returns the display colour for code, defaulting to grey.
func StatusColor(code string) string {
	if c, ok := statusColors[code]; ok {
		return c
	}
	return "#6b7280"
}

// StatusPhrase returns the notification phrase for code, or code itself
// when unrecognised.
func StatusPhrase(code string) string {
	if p, ok := statusPhrases[code]; ok {
		return p
	}
	return code
}

// StatusRank returns the progress position of code and whether it has one.
// Cancelled and unknown codes have none.
func StatusRank(code string) (int, bool) {
	rank, ok := statusRank[code]
	return rank, ok
}
