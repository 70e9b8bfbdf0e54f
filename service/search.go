package service

import "loyalty-admin/utils"

type searchable interface {
	SearchFields() []string
}

func matches(filter string, item searchable) bool {
	return utils.MatchesAny(filter, item.SearchFields()...)
}
