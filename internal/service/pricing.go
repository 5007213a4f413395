package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/ldelvaux/pcforge/internal/models"
)

func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid price %q", ErrValidation, s)
	}
	return price, nil
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// TotalPrice is the component-price sum rounded to two decimals.
func TotalPrice(components []models.Component) decimal.Decimal {
	total := decimal.Zero
	for i := range components {
		total = total.Add(components[i].Price)
	}
	return total.Round(2)
}

// AverageScore is round(sum/n); zero for an empty set.
func AverageScore(components []models.Component) int {
	if len(components) == 0 {
		return 0
	}
	sum := 0
	for i := range components {
		sum += components[i].Score
	}
	return int(math.Round(float64(sum) / float64(len(components))))
}
