package domain

import "sort"

type Summary struct {
	ProductCount  int `json:"productCount"`
	TotalUnits    int `json:"totalUnits"`
	LowStockCount int `json:"lowStockCount"`
	EntriesTotal  int `json:"entriesTotal"`
	ExitsTotal    int `json:"exitsTotal"`
}

func Summarize(products []Product, movements []Movement) Summary {
	summary := Summary{ProductCount: len(products)}
	for i := range products {
		summary.TotalUnits += products[i].Quantity
		if products[i].IsLowStock() {
			summary.LowStockCount++
		}
	}
	for _, movement := range movements {
		switch movement.Type {
		case MovementTypeEntrada:
			summary.EntriesTotal += movement.Quantity
		case MovementTypeSaida:
			summary.ExitsTotal += movement.Quantity
		}
	}
	return summary
}

type CategoryStock struct {
	Category     string `json:"category"`
	ProductCount int    `json:"productCount"`
	Units        int    `json:"units"`
}

type MovedProduct struct {
	ProductID   ID     `json:"productId"`
	ProductName string `json:"productName"`
	Entries     int    `json:"entries"`
	Exits       int    `json:"exits"`
	Volume      int    `json:"volume"`
}

type Report struct {
	Summary    Summary         `json:"summary"`
	Categories []CategoryStock `json:"categories"`
	TopMoved   []MovedProduct  `json:"topMoved"`
}

// BuildReport aggregates stock per category and movement volume per product.
// Movements are expected newest first; the first name seen for a product is
// used as its label.
func BuildReport(products []Product, movements []Movement, topN int) Report {
	return Report{
		Summary:    Summarize(products, movements),
		Categories: stockByCategory(products),
		TopMoved:   topMovedProducts(movements, topN),
	}
}

func stockByCategory(products []Product) []CategoryStock {
	index := make(map[string]int)
	categories := make([]CategoryStock, 0)
	for _, product := range products {
		i, ok := index[product.Category]
		if !ok {
			i = len(categories)
			index[product.Category] = i
			categories = append(categories, CategoryStock{Category: product.Category})
		}
		categories[i].ProductCount++
		categories[i].Units += product.Quantity
	}
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Units != categories[j].Units {
			return categories[i].Units > categories[j].Units
		}
		return categories[i].Category < categories[j].Category
	})
	return categories
}

func topMovedProducts(movements []Movement, topN int) []MovedProduct {
	index := make(map[ID]int)
	moved := make([]MovedProduct, 0)
	for _, movement := range movements {
		i, ok := index[movement.ProductID]
		if !ok {
			i = len(moved)
			index[movement.ProductID] = i
			moved = append(moved, MovedProduct{ProductID: movement.ProductID, ProductName: movement.ProductName})
		}
		switch movement.Type {
		case MovementTypeEntrada:
			moved[i].Entries += movement.Quantity
		case MovementTypeSaida:
			moved[i].Exits += movement.Quantity
		}
		moved[i].Volume += movement.Quantity
	}
	sort.SliceStable(moved, func(i, j int) bool {
		if moved[i].Volume != moved[j].Volume {
			return moved[i].Volume > moved[j].Volume
		}
		return moved[i].ProductName < moved[j].ProductName
	})
	if topN >= 0 && len(moved) > topN {
		moved = moved[:topN]
	}
	return moved
}
