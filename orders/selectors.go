package orders

import "menu-ordering/model"

func SelectAllOrders(s State) []model.Order    { return s.Orders }
func SelectSelectedOrder(s State) *model.Order { return s.SelectedOrder }
func SelectOrdersLoading(s State) bool         { return s.Loading }
func SelectOrdersError(s State) error          { return s.Err }
