package domain

import (
	"time"

	"gorm.io/datatypes"
)

type BudgetLevel string

const (
	BudgetFree          BudgetLevel = "FREE"
	BudgetInexpensive   BudgetLevel = "INEXPENSIVE"
	BudgetModerate      BudgetLevel = "MODERATE"
	BudgetExpensive     BudgetLevel = "EXPENSIVE"
	BudgetVeryExpensive BudgetLevel = "VERY_EXPENSIVE"
)

// PriceLevel maps a budget level onto the 0-4 price scale used by place data.
// Unknown levels map to -1 so callers can skip the filter.
func (b BudgetLevel) PriceLevel() int {
	switch b {
	case BudgetFree:
		return 0
	case BudgetInexpensive:
		return 1
	case BudgetModerate:
		return 2
	case BudgetExpensive:
		return 3
	case BudgetVeryExpensive:
		return 4
	default:
		return -1
	}
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Place struct {
	ID          string                       `gorm:"primaryKey" json:"id"`
	Name        string                       `gorm:"column:name;not null" json:"name"`
	Category    string                       `gorm:"column:category;not null;index" json:"category"`
	Categories  datatypes.JSONSlice[string]  `gorm:"column:categories" json:"categories,omitempty"`
	Rating      float64                      `gorm:"column:rating" json:"rating"`
	ReviewCount int                          `gorm:"column:review_count" json:"review_count"`
	PriceLevel  int                          `gorm:"column:price_level" json:"price_level"`
	Latitude    float64                      `gorm:"column:latitude;index" json:"latitude"`
	Longitude   float64                      `gorm:"column:longitude;index" json:"longitude"`
	Indoor      bool                         `gorm:"column:indoor" json:"indoor"`
	Tags        datatypes.JSONSlice[string]  `gorm:"column:tags" json:"tags,omitempty"`
	CreatedAt   time.Time                    `gorm:"column:created_at;autoCreateTime" json:"-"`
}

// AllCategories returns the primary category plus any secondary ones.
func (p Place) AllCategories() []string {
	out := make([]string, 0, len(p.Categories)+1)
	if p.Category != "" {
		out = append(out, p.Category)
	}
	for _, c := range p.Categories {
		if c != p.Category {
			out = append(out, c)
		}
	}
	return out
}

func (p Place) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
