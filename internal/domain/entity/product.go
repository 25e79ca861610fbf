package entity

import "fmt"

// Product maps a display name shown on a chat button to a Stripe price ID.
type Product struct {
	Name    string `json:"name"`
	PriceID string `json:"price_id"`
}

// Catalog is the immutable, ordered product table built at startup.
type Catalog struct {
	products []Product
	byName   map[string]Product
}

func NewCatalog(products []Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one product")
	}

	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byName:   make(map[string]Product, len(products)),
	}
	for _, p := range products {
		if p.Name == "" || p.PriceID == "" {
			return nil, fmt.Errorf("product %q: name and price ID are required", p.Name)
		}
		if _, exists := c.byName[p.Name]; exists {
			return nil, fmt.Errorf("duplicate product name %q", p.Name)
		}
		c.byName[p.Name] = p
		c.products = append(c.products, p)
	}
	return c, nil
}

// Lookup resolves a product by its display name.
func (c *Catalog) Lookup(name string) (Product, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Products returns the products in configuration order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Len() int {
	return len(c.products)
}
