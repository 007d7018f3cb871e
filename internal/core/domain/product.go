package domain

type Product struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Supplier    string `json:"supplier"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"minQuantity"`
}

// ProductInput carries the mutable fields of a product. Callers validate it.
type ProductInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Supplier    string `json:"supplier"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"minQuantity"`
}

func NewProduct(id ID, name, category, supplier string, quantity, minQuantity int) *Product {
	return &Product{
		ID:          id,
		Name:        name,
		Category:    category,
		Supplier:    supplier,
		Quantity:    quantity,
		MinQuantity: minQuantity,
	}
}

func NewProductFromInput(id ID, input ProductInput) *Product {
	return NewProduct(id, input.Name, input.Category, input.Supplier, input.Quantity, input.MinQuantity)
}

// Replace overwrites every mutable field, quantity included.
func (p *Product) Replace(input ProductInput) {
	p.Name = input.Name
	p.Category = input.Category
	p.Supplier = input.Supplier
	p.Quantity = input.Quantity
	p.MinQuantity = input.MinQuantity
}

// IsLowStock reports whether the product is strictly below its minimum.
func (p *Product) IsLowStock() bool {
	return p.Quantity < p.MinQuantity
}

// ApplyMovement mutates the quantity by the signed delta of the movement type
// and returns the new quantity. Debits never drive the quantity below zero.
func (p *Product) ApplyMovement(movementType MovementType, quantity int) int {
	p.Quantity = ClampQuantity(p.Quantity + movementType.Delta(quantity))
	return p.Quantity
}

func ClampQuantity(quantity int) int {
	return max(0, quantity)
}

func FindProduct(products []Product, id ID) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func FilterLowStock(products []Product) []Product {
	low := make([]Product, 0)
	for _, product := range products {
		if product.IsLowStock() {
			low = append(low, product)
		}
	}
	return low
}

type LowStockEvent struct {
	ProductID   ID     `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
	MovementID  ID     `json:"movement_id"`
}

func (e *LowStockEvent) GetName() string {
	return "product.low_stock"
}

func (e *LowStockEvent) GetEntityName() string {
	return "product"
}

func NewLowStockEvent(product *Product, movementID ID) *LowStockEvent {
	return &LowStockEvent{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    product.Quantity,
		MinQuantity: product.MinQuantity,
		MovementID:  movementID,
	}
}
