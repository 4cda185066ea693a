package controllers

import (
	"net/http"

	gql "github.com/graphql-go/graphql"

	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/app/repositories"
	"github.com/epicurean/epicurean/app/services"
	"github.com/epicurean/epicurean/pkg/graphql"
	"github.com/epicurean/epicurean/pkg/middleware"
)

// NewGraphQLHandler builds the read-only GraphQL endpoint: the menu
// catalog and the caller's own orders.
func NewGraphQLHandler(
	catalog *services.CatalogService,
	orders *services.OrderService,
	users *repositories.UserRepository,
) (http.HandlerFunc, error) {
	menuItemType := gql.NewObject(gql.ObjectConfig{
		Name: "MenuItem",
		Fields: gql.Fields{
			"id":           &gql.Field{Type: gql.String},
			"name":         &gql.Field{Type: gql.String},
			"description":  &gql.Field{Type: gql.String},
			"price":        &gql.Field{Type: gql.Float},
			"category":     &gql.Field{Type: gql.String},
			"image":        &gql.Field{Type: gql.String},
			"isVegetarian": &gql.Field{Type: gql.Boolean},
			"isSpicy":      &gql.Field{Type: gql.Boolean},
			"isAvailable":  &gql.Field{Type: gql.Boolean},
		},
	})

	catalogType := gql.NewObject(gql.ObjectConfig{
		Name: "Catalog",
		Fields: gql.Fields{
			"items":         &gql.Field{Type: gql.NewList(menuItemType)},
			"usingFallback": &gql.Field{Type: gql.Boolean},
		},
	})

	cartLineType := gql.NewObject(gql.ObjectConfig{
		Name: "OrderLine",
		Fields: gql.Fields{
			"itemId":    &gql.Field{Type: gql.String},
			"name":      &gql.Field{Type: gql.String},
			"unitPrice": &gql.Field{Type: gql.Float},
			"quantity":  &gql.Field{Type: gql.Int},
		},
	})

	orderType := gql.NewObject(gql.ObjectConfig{
		Name: "Order",
		Fields: gql.Fields{
			"id":                &gql.Field{Type: gql.String},
			"status":            &gql.Field{Type: gql.String},
			"paymentStatus":     &gql.Field{Type: gql.String},
			"paymentMethod":     &gql.Field{Type: gql.String},
			"subtotal":          &gql.Field{Type: gql.Float},
			"deliveryFee":       &gql.Field{Type: gql.Float},
			"tax":               &gql.Field{Type: gql.Float},
			"total":             &gql.Field{Type: gql.Float},
			"estimatedDelivery": &gql.Field{Type: gql.String},
			"items":             &gql.Field{Type: gql.NewList(cartLineType)},
			"statusLabel": &gql.Field{
				Type: gql.String,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					order, _ := p.Source.(models.Order)
					return models.StatusLabel(order.Status), nil
				},
			},
			"statusColor": &gql.Field{
				Type: gql.String,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					order, _ := p.Source.(models.Order)
					return models.StatusColor(order.Status), nil
				},
			},
		},
	})

	rootQuery := gql.NewObject(gql.ObjectConfig{
		Name: "RootQuery",
		Fields: gql.Fields{
			"menu": &gql.Field{
				Type: catalogType,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return catalog.ListItems(p.Context), nil
				},
			},
			"myOrders": &gql.Field{
				Type: gql.NewList(orderType),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					userID, ok := middleware.UserIDFrom(p.Context)
					if !ok {
						return nil, services.Validationf("sign in to view orders")
					}
					user, err := users.FindByID(userID)
					if err != nil {
						return nil, services.Persistence("load profile", err)
					}
					return orders.MyOrders(p.Context, user.Actor())
				},
			},
		},
	})

	schema, err := graphql.NewSchema(rootQuery)
	if err != nil {
		return nil, err
	}
	return graphql.Handler(schema), nil
}
