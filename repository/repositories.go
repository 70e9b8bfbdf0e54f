package repository

import "loyalty-admin/models"

// NewCategoryRepository creates an empty category store
func NewCategoryRepository() *Store[models.Category] {
	return NewStore[models.Category]("category")
}

// NewProductRepository creates an empty product store
func NewProductRepository() *Store[models.Product] {
	return NewStore[models.Product]("product")
}

// NewTierRepository creates an empty loyalty tier store
func NewTierRepository() *Store[models.LoyaltyTier] {
	return NewStore[models.LoyaltyTier]("loyalty tier")
}

// NewCustomerRepository creates an empty customer store
func NewCustomerRepository() *Store[models.Customer] {
	return NewStore[models.Customer]("customer")
}

// NewPromotionRepository creates an empty promotion store
func NewPromotionRepository() *Store[models.Promotion] {
	return NewStore[models.Promotion]("promotion")
}

// NewOrderRepository creates an empty order store
func NewOrderRepository() *Store[models.Order] {
	return NewStore[models.Order]("order")
}

// NewActivityRepository creates an empty customer activity store
func NewActivityRepository() *Store[models.CustomerActivity] {
	return NewStore[models.CustomerActivity]("activity")
}
