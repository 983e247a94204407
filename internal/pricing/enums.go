package pricing

// SeatClass is the fare tier of a ticket.
type SeatClass string

const (
	SeatClassEconomy        SeatClass = "ECONOMY"
	SeatClassPremiumEconomy SeatClass = "PREMIUM_ECONOMY"
	SeatClassBusiness       SeatClass = "BUSINESS"
	SeatClassFirst          SeatClass = "FIRST"
)

// seatClassMultipliers are applied to the economy base price when a flight
// has no explicit price for the requested class.
var seatClassMultipliers = map[SeatClass]float64{
	SeatClassEconomy:        1,
	SeatClassPremiumEconomy: 1.5,
	SeatClassBusiness:       2.5,
	SeatClassFirst:          4,
}

func (c SeatClass) IsValid() bool {
	_, ok := seatClassMultipliers[c]
	return ok
}

func (c SeatClass) String() string {
	return string(c)
}

// Multiplier returns the class price multiplier relative to economy.
func (c SeatClass) Multiplier() float64 {
	if m, ok := seatClassMultipliers[c]; ok {
		return m
	}
	return 1
}

// DisplayName returns the Vietnamese cabin name shown on tickets.
func (c SeatClass) DisplayName() string {
	switch c {
	case SeatClassPremiumEconomy:
		return "Phổ thông đặc biệt"
	case SeatClassBusiness:
		return "Thương gia"
	case SeatClassFirst:
		return "Thương gia hạng nhất"
	default:
		return "Phổ thông"
	}
}

// PassengerType categorizes a traveller for fare and age rules.
type PassengerType string

const (
	PassengerAdult  PassengerType = "ADULT"
	PassengerChild  PassengerType = "CHILD"
	PassengerInfant PassengerType = "INFANT"
)

var passengerTypeMultipliers = map[PassengerType]float64{
	PassengerAdult:  1.0,
	PassengerChild:  0.75,
	PassengerInfant: 0.10,
}

func (t PassengerType) IsValid() bool {
	_, ok := passengerTypeMultipliers[t]
	return ok
}

func (t PassengerType) String() string {
	return string(t)
}

// Multiplier returns the fare fraction charged for this passenger type.
func (t PassengerType) Multiplier() float64 {
	if m, ok := passengerTypeMultipliers[t]; ok {
		return m
	}
	return 1
}

// NormalizePassengerType maps legacy lowercase tags ("adult", "child",
// "infant") and canonical uppercase values onto a PassengerType. Unknown
// values default to ADULT, matching the behavior of the web client this
// API grew out of.
func NormalizePassengerType(raw string) PassengerType {
	switch raw {
	case "ADULT", "adult":
		return PassengerAdult
	case "CHILD", "child":
		return PassengerChild
	case "INFANT", "infant":
		return PassengerInfant
	default:
		return PassengerAdult
	}
}
