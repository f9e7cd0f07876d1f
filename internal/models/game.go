package models

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Game represents a scheduled tambola game and its live dealing state.
// Numbers holds the game's permanent deal order as a comma-joined string of
// the shuffled 1..90 sequence; DealtNumbers grows as the dealer reveals them.
type Game struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StartDate       time.Time          `bson:"startDate" json:"startDate"`
	PurchaseStopsAt time.Time          `bson:"purchaseStopsAt,omitempty" json:"purchaseStopsAt,omitempty"`
	Numbers         string             `bson:"numbers" json:"-"`
	DealtNumbers    []int              `bson:"dealtNumbers" json:"dealtNumbers"`
	LastDealIndex   int                `bson:"lastDealIndex" json:"lastDealIndex"`
	PoolPrize       float64            `bson:"poolPrize" json:"poolPrize"`
	Collection      float64            `bson:"collection" json:"collection"`
	Price           float64            `bson:"price" json:"price"`
	PurchaseLimit   int                `bson:"purchaseLimit" json:"purchaseLimit"`
	PlayerLimit     []int              `bson:"playerLimit" json:"playerLimit"` // [min, max]
	DealDelayMS     int                `bson:"dealDelayMs" json:"dealDelayMs"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	IsStarted       bool               `bson:"isStarted" json:"isStarted"`
	IsEnded         bool               `bson:"isEnded" json:"isEnded"`
	IsSoldOut       bool               `bson:"isSoldOut" json:"isSoldOut"`
	IsStopped       bool               `bson:"isStopped" json:"isStopped"`
	IsDeleted       bool               `bson:"isDeleted" json:"-"`
	Resumable       bool               `bson:"resumable" json:"-"`
	Resumed         bool               `bson:"resumed" json:"-"`
	StartedAt       time.Time          `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsRunning reports whether the game is mid-deal.
func (g *Game) IsRunning() bool {
	return g.IsStarted && !g.IsEnded
}

// DealOrder parses the persisted deal-order string back into its sequence.
func (g *Game) DealOrder() []int {
	if g.Numbers == "" {
		return nil
	}
	parts := strings.Split(g.Numbers, ",")
	order := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		order = append(order, n)
	}
	return order
}

// JoinDealOrder renders a deal-order sequence in the persisted string form.
func JoinDealOrder(order []int) string {
	parts := make([]string, len(order))
	for i, n := range order {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
