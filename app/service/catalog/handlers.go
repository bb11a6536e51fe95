package catalog

import (
	"context"
	"errors"
	"fmt"
	"intentbot/app/client/downstream"
	"intentbot/app/service/turn"
	"log/slog"
	"reflect"

	"github.com/elliotchance/pie/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Handler performs one catalog action.
type Handler interface {
	Type() ActionType
	// Name is the tool name the handler is exposed under.
	Name() string
	Description() string
	// Fields lists the parameters in the order they are reported missing.
	Fields() []Field
	Handle(ctx context.Context, action Action) (turn.Result, error)
}

type productIntegration struct {
	ProductName string `json:"ProductName"`
	ProductID   string `json:"ProductId"`
}

type productPayload struct {
	SWIProductIntegrationIO productIntegration `json:"SWIProductIntegrationIO"`
}

type productCreated struct {
	ProductID string `json:"ProductId"`
	Name      string `json:"name"`
}

type priceListItem struct {
	PriceListID string `json:"PriceListId"`
	ProductID   string `json:"ProductId"`
	Price       string `json:"Price"`
	Currency    string `json:"Currency"`
}

type priceListPayload struct {
	SWIISSPriceListItemIO priceListItem `json:"SWIISSPriceListItemIO"`
}

// PriceListRequest declares the price list fields; labels double as missing-field names.
type PriceListRequest struct {
	Name     string `label:"Price List Name" validate:"required"`
	Product  string `label:"Product" validate:"required"`
	Price    string `label:"Price" validate:"required"`
	Currency string `label:"Currency Code" validate:"required"`
}

type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("label")
	})

	return &requestValidator{validate: validate}
}

// missing returns the labels of empty required fields in declaration order.
func (v *requestValidator) missing(request any) ([]string, error) {
	err := v.validate.Struct(request)
	if err == nil {
		return nil, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, fmt.Errorf("failed to validate request: %w", err)
	}

	return pie.Map([]validator.FieldError(validationErrors), func(fe validator.FieldError) string {
		return fe.Field()
	}), nil
}

func (v *requestValidator) missingName(name, label string) []string {
	if err := v.validate.Var(name, "required"); err != nil {
		return []string{label}
	}

	return nil
}

type productHandler struct {
	index    *ProductIndex
	printer  *downstream.Printer
	validate *requestValidator
	newID    func() string
}

func (h *productHandler) Type() ActionType { return ActionCreateProduct }
func (h *productHandler) Name() string     { return "create_product" }

func (h *productHandler) Description() string {
	return "Print a sample REST request for product creation and return a simulated ProductId."
}

func (h *productHandler) Fields() []Field {
	return []Field{{Key: "name", Label: "Product Name"}}
}

func (h *productHandler) Handle(_ context.Context, action Action) (turn.Result, error) {
	if missing := h.validate.missingName(action.Name, "Product Name"); len(missing) > 0 {
		return turn.NeedsFields(missing...), nil
	}

	productID := h.newID()

	payload := productPayload{
		SWIProductIntegrationIO: productIntegration{
			ProductName: action.Name,
			ProductID:   productID,
		},
	}
	if err := h.printer.Emit("Sample REST request for product creation:", payload); err != nil {
		return turn.Result{}, err
	}

	h.index.Put(action.Name, productID)

	slog.Info("Created product", "name", action.Name, "product_id", productID, "telegram", true)

	created, err := downstream.Format(productCreated{ProductID: productID, Name: action.Name})
	if err != nil {
		return turn.Result{}, err
	}

	return turn.Completed(created), nil
}

type priceListHandler struct {
	index    *ProductIndex
	validate *requestValidator
}

func (h *priceListHandler) Type() ActionType { return ActionCreatePriceList }
func (h *priceListHandler) Name() string     { return "create_pricelist" }

func (h *priceListHandler) Description() string {
	return "Print a sample REST request for creating a Siebel price list item."
}

func (h *priceListHandler) Fields() []Field {
	return []Field{
		{Key: "name", Label: "Price List Name"},
		{Key: "product", Label: "Product"},
		{Key: "price", Label: "Price"},
		{Key: "currency", Label: "Currency Code"},
	}
}

func (h *priceListHandler) Handle(_ context.Context, action Action) (turn.Result, error) {
	request := PriceListRequest{
		Name:     action.Name,
		Product:  action.Product,
		Price:    action.Price,
		Currency: action.Currency,
	}

	missing, err := h.validate.missing(request)
	if err != nil {
		return turn.Result{}, err
	}
	if len(missing) > 0 {
		return turn.NeedsFields(missing...), nil
	}

	if _, ok := h.index.Lookup(request.Product); !ok {
		slog.Debug("Product not created in this session, using its name as id", "product", request.Product)
	}

	payload, err := downstream.Format(priceListPayload{
		SWIISSPriceListItemIO: priceListItem{
			PriceListID: request.Name,
			ProductID:   h.index.Resolve(request.Product),
			Price:       request.Price,
			Currency:    request.Currency,
		},
	})
	if err != nil {
		return turn.Result{}, err
	}

	return turn.Completed("Sample REST request for Siebel price list item:\n" + payload), nil
}

// namedHandler covers the actions that only need a name.
type namedHandler struct {
	actionType  ActionType
	name        string
	description string
	label       string
	format      string
	validate    *requestValidator
}

func (h *namedHandler) Type() ActionType    { return h.actionType }
func (h *namedHandler) Name() string        { return h.name }
func (h *namedHandler) Description() string { return h.description }

func (h *namedHandler) Fields() []Field {
	return []Field{{Key: "name", Label: h.label}}
}

func (h *namedHandler) Handle(_ context.Context, action Action) (turn.Result, error) {
	if missing := h.validate.missingName(action.Name, h.label); len(missing) > 0 {
		return turn.NeedsFields(missing...), nil
	}

	return turn.Completed(fmt.Sprintf(h.format, action.Name)), nil
}

// NewHandlers builds the fixed handler table. Product creation records into index,
// price list creation resolves through it.
func NewHandlers(index *ProductIndex, printer *downstream.Printer) []Handler {
	validate := newRequestValidator()

	named := func(actionType ActionType, name, description, label, format string) Handler {
		return &namedHandler{
			actionType:  actionType,
			name:        name,
			description: description,
			label:       label,
			format:      format,
			validate:    validate,
		}
	}

	return []Handler{
		&productHandler{index: index, printer: printer, validate: validate, newID: uuid.NewString},
		&priceListHandler{index: index, validate: validate},
		named(ActionCreatePromotion, "create_promotion",
			"Create a Siebel bundle promotion with the given name.",
			"Promotion Name", "Created promotion: %s"),
		named(ActionCreateProductClass, "create_product_class",
			"Create a Siebel product class with the given name.",
			"Product Class Name", "Created product class: %s"),
		named(ActionCreateProductLine, "create_product_line",
			"Create a Siebel product line with the given name.",
			"Product Line Name", "Created product line: %s"),
		named(ActionCreateProductAttributes, "create_product_attributes",
			"Create product attributes with the given name.",
			"Product Attributes Name", "Created product attributes: %s"),
		named(ActionCreateProductEligibility, "create_product_eligibility",
			"Create product eligibility rules with the given name.",
			"Product Eligibility Name", "Created product eligibility for: %s"),
		named(ActionCreateProductCompatibility, "create_product_compatibility",
			"Create product compatibility rules with the given name.",
			"Product Compatibility Name", "Created product compatibility for: %s"),
	}
}
