package statistics

// Overview is the back-office dashboard headline block.
type Overview struct {
	TotalBookings     int64   `json:"total_bookings"`
	ConfirmedBookings int64   `json:"confirmed_bookings"`
	CancelledBookings int64   `json:"cancelled_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
	UnpaidRevenue     float64 `json:"unpaid_revenue"`
	TotalPassengers   int64   `json:"total_passengers"`
	TotalFlights      int64   `json:"total_flights"`
	ActivePromotions  int64   `json:"active_promotions"`
}

// DailyPoint is one day in a time series.
type DailyPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Count int64   `json:"count"`
}

// PaymentStatusCount groups bookings by how they were settled.
type PaymentStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// RouteStat is one origin-destination pair ranked by bookings.
type RouteStat struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Bookings    int64   `json:"bookings"`
	Revenue     float64 `json:"revenue"`
}

// PeriodComparison contrasts two date ranges.
type PeriodComparison struct {
	Current        PeriodTotals `json:"current"`
	Previous       PeriodTotals `json:"previous"`
	BookingsChange float64      `json:"bookings_change_pct"`
	RevenueChange  float64      `json:"revenue_change_pct"`
}

type PeriodTotals struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Bookings int64   `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// DateRangeQuery bounds a series request. Dates are YYYY-MM-DD; To is
// exclusive.
type DateRangeQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

type RouteQuery struct {
	Limit int `form:"limit"`
}
