package repository

import "loyalty-admin/models"

// RepositoryInterface defines the contract for entity repository operations
type RepositoryInterface[T Entity[T]] interface {
	Add(item T) T
	Insert(item T) (T, error)
	Get(id int64) (T, error)
	Update(id int64, mutate func(current T) (T, error)) (T, error)
	Remove(id int64) error
	List(filter string) []T
	Filter(predicate func(item T) bool) []T
	All() []T
	Exists(predicate func(item T) bool) bool
	Count() int
}

// Per-resource repository contracts used by the services.
type (
	CategoryRepositoryInterface  = RepositoryInterface[models.Category]
	ProductRepositoryInterface   = RepositoryInterface[models.Product]
	TierRepositoryInterface      = RepositoryInterface[models.LoyaltyTier]
	CustomerRepositoryInterface  = RepositoryInterface[models.Customer]
	PromotionRepositoryInterface = RepositoryInterface[models.Promotion]
	OrderRepositoryInterface     = RepositoryInterface[models.Order]
	ActivityRepositoryInterface  = RepositoryInterface[models.CustomerActivity]
)

// Ensure Store implements RepositoryInterface
var _ CustomerRepositoryInterface = (*Store[models.Customer])(nil)
