package services

import (
	"car_configurator_server/database"
	"car_configurator_server/lib"
	"car_configurator_server/pricing"
	"car_configurator_server/store"
	"car_configurator_server/structs"
	"car_configurator_server/structs/tables"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

const maxReferenceAttempts = 3

type QuoteService struct {
	logger  *gecho.Logger
	cfg     *structs.Config
	quotes  QuoteStore
	catalog CatalogStore
	users   UserStore
	mailer  Mailer
}

// NewQuoteService wires quote persistence. mailer may be nil.
func NewQuoteService(logger *gecho.Logger, cfg *structs.Config, quotes QuoteStore, catalog CatalogStore, users UserStore, mailer Mailer) *QuoteService {
	return &QuoteService{
		logger:  logger,
		cfg:     cfg,
		quotes:  quotes,
		catalog: catalog,
		users:   users,
		mailer:  mailer,
	}
}

// Create persists a quote for owner, or an anonymous quote when owner is nil.
// Color and option details are copied from the catalog as they are right now.
func (qs *QuoteService) Create(ctx context.Context, req *structs.QuoteRequest, owner *structs.Caller) (*tables.Quote, error) {
	start := time.Now()

	quote, err := qs.buildQuote(ctx, req)
	if err != nil {
		recordQuoteOp("create", err)
		return nil, err
	}
	quote.ID = uuid.New()
	if owner != nil {
		userID := owner.UserID
		quote.UserID = &userID
	}

	var created *tables.Quote
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		quote.Reference, err = lib.GenerateQuoteReference()
		if err != nil {
			break
		}
		created, err = qs.quotes.Create(ctx, quote)
		if !lib.IsConflict(err) {
			break
		}
		qs.logger.Warn("Quote reference collision, retrying", gecho.Field("reference", quote.Reference), gecho.Field("attempt", attempt))
	}
	if errors.Is(err, lib.ErrMissingReference) && owner != nil {
		// the token outlived its account
		err = lib.ErrUnauthenticated
	}
	recordQuoteOp("create", err)
	if err != nil {
		qs.logger.Error("Failed to create quote", gecho.Field("error", err), gecho.Field("car_id", req.CarID))
		return nil, err
	}

	qs.logger.Debug("Quote created",
		gecho.Field("quote_id", created.ID),
		gecho.Field("reference", created.Reference),
		gecho.Field("anonymous", created.UserID == nil),
		gecho.Field("elapsed_time_ms", time.Since(start).Milliseconds()),
	)

	if created.UserID != nil && qs.mailer != nil {
		go qs.sendConfirmation(context.WithoutCancel(ctx), *created.UserID, created)
	}

	return created, nil
}

func (qs *QuoteService) sendConfirmation(ctx context.Context, userID uuid.UUID, quote *tables.Quote) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	user, err := qs.users.GetByID(ctx, userID)
	if err != nil {
		qs.logger.Warn("Could not load quote owner for confirmation email", gecho.Field("error", err), gecho.Field("user_id", userID))
		return
	}
	if err := qs.mailer.SendQuoteConfirmation(ctx, user, quote); err != nil {
		qs.logger.Error("Failed to send quote confirmation", gecho.Field("error", err), gecho.Field("quote_id", quote.ID))
	}
}

// GetByID returns a quote the caller may read. Anonymous quotes are public; owned
// quotes are visible to their owner and to administrators only.
func (qs *QuoteService) GetByID(ctx context.Context, id uuid.UUID, caller *structs.Caller) (*tables.Quote, error) {
	quote, err := qs.quotes.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if quote.UserID != nil && (caller == nil || (!caller.IsAdmin && !quote.IsOwnedBy(caller.UserID))) {
		qs.logger.Warn("Quote read denied", gecho.Field("quote_id", id))
		return nil, lib.ErrForbidden
	}
	return quote, nil
}

// ListByOwner returns the user's quotes, newest first.
func (qs *QuoteService) ListByOwner(ctx context.Context, userID uuid.UUID) ([]tables.Quote, error) {
	return qs.quotes.ListByUser(ctx, userID)
}

// ListAll pages through every quote. Administrators only; the route enforces it.
func (qs *QuoteService) ListAll(ctx context.Context, filter store.QuoteFilter) (*database.PaginationResult[tables.Quote], error) {
	return qs.quotes.List(ctx, filter)
}

// Update fully replaces the quote's configuration and option set. Ownership and
// reference do not change.
func (qs *QuoteService) Update(ctx context.Context, id uuid.UUID, req *structs.QuoteRequest, caller *structs.Caller) (*tables.Quote, error) {
	existing, err := qs.authorizeMutation(ctx, id, caller)
	if err != nil {
		recordQuoteOp("update", err)
		return nil, err
	}

	quote, err := qs.buildQuote(ctx, req)
	if err != nil {
		recordQuoteOp("update", err)
		return nil, err
	}
	quote.ID = existing.ID
	quote.Reference = existing.Reference
	quote.UserID = existing.UserID
	quote.CreatedAt = existing.CreatedAt
	quote.UpdatedAt = time.Now()

	updated, err := qs.quotes.Replace(ctx, quote)
	recordQuoteOp("update", err)
	if err != nil {
		if !lib.IsNotFound(err) {
			qs.logger.Error("Failed to update quote", gecho.Field("error", err), gecho.Field("quote_id", id))
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the quote and its option rows.
func (qs *QuoteService) Delete(ctx context.Context, id uuid.UUID, caller *structs.Caller) error {
	if _, err := qs.authorizeMutation(ctx, id, caller); err != nil {
		recordQuoteOp("delete", err)
		return err
	}

	err := qs.quotes.Delete(ctx, id)
	recordQuoteOp("delete", err)
	if err != nil && !lib.IsNotFound(err) {
		qs.logger.Error("Failed to delete quote", gecho.Field("error", err), gecho.Field("quote_id", id))
	}
	return err
}

// authorizeMutation loads the quote and checks the caller is its owner or an administrator.
// Anonymous quotes have no owner to match, so only administrators may change them.
func (qs *QuoteService) authorizeMutation(ctx context.Context, id uuid.UUID, caller *structs.Caller) (*tables.Quote, error) {
	if caller == nil {
		return nil, lib.ErrUnauthenticated
	}

	quote, err := qs.quotes.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller.IsAdmin || quote.IsOwnedBy(caller.UserID) {
		return quote, nil
	}

	qs.logger.Warn("Quote mutation denied",
		gecho.Field("quote_id", id),
		gecho.Field("user_id", caller.UserID),
		gecho.Field("anonymous_quote", quote.UserID == nil),
	)
	return nil, lib.ErrForbidden
}

// buildQuote resolves the request against the catalog and snapshots color and option details.
func (qs *QuoteService) buildQuote(ctx context.Context, req *structs.QuoteRequest) (*tables.Quote, error) {
	car, err := qs.catalog.GetCar(ctx, req.CarID)
	if err != nil {
		if lib.IsNotFound(err) {
			return nil, lib.NewValidationError("carId", fmt.Sprintf("car %d does not exist", req.CarID))
		}
		return nil, err
	}

	color, err := qs.catalog.GetColorByCode(ctx, req.ColorCode)
	if err != nil {
		if lib.IsNotFound(err) {
			return nil, lib.NewValidationError("colorCode", fmt.Sprintf("unknown color %q", req.ColorCode))
		}
		return nil, err
	}

	codes := uniqueCodes(req.OptionCodes)
	options, err := qs.catalog.OptionsByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]tables.Option, len(options))
	for _, o := range options {
		byCode[o.Code] = o
	}

	var verr *lib.ValidationError
	snapshot := make([]*tables.QuoteOption, 0, len(codes))
	priced := make([]pricing.Option, 0, len(codes))
	for i, code := range codes {
		o, ok := byCode[code]
		if !ok {
			if verr == nil {
				verr = &lib.ValidationError{}
			}
			verr.Add(fmt.Sprintf("optionCodes[%d]", i), fmt.Sprintf("unknown option %q", code))
			continue
		}
		snapshot = append(snapshot, &tables.QuoteOption{
			OptionCode:  o.Code,
			OptionName:  o.Name,
			OptionPrice: o.Price,
		})
		priced = append(priced, pricing.Option{Code: o.Code, Name: o.Name, Price: o.Price})
	}
	if verr != nil {
		return nil, verr
	}

	if qs.cfg.Quotes.VerifyTotals {
		totals := pricing.Compute(
			&pricing.Car{ID: car.ID, BasePrice: car.BasePrice},
			&pricing.Color{Code: color.Code, Price: color.Price},
			priced,
			pricing.Discount{Name: req.DiscountName, Amount: req.DiscountAmount},
			pricing.Delivery{Region: req.DeliveryRegion, Fee: req.DeliveryFee},
		)
		if err := checkTotals(req, totals); err != nil {
			qs.logger.Warn("Submitted quote totals do not match the catalog",
				gecho.Field("car_id", req.CarID),
				gecho.Field("subtotal", req.Subtotal),
				gecho.Field("expected_subtotal", totals.Subtotal),
				gecho.Field("total", req.Total),
				gecho.Field("expected_total", totals.Total),
			)
			return nil, err
		}
	}

	return &tables.Quote{
		CarID:          car.ID,
		ColorCode:      color.Code,
		ColorName:      color.Name,
		ColorHex:       color.Hex,
		ColorPrice:     color.Price,
		DiscountName:   req.DiscountName,
		DiscountAmount: req.DiscountAmount,
		DeliveryRegion: req.DeliveryRegion,
		DeliveryFee:    req.DeliveryFee,
		Subtotal:       req.Subtotal,
		Total:          req.Total,
		Options:        snapshot,
	}, nil
}

func checkTotals(req *structs.QuoteRequest, totals pricing.Totals) error {
	var verr *lib.ValidationError
	if req.Subtotal != totals.Subtotal {
		verr = lib.NewValidationError("subtotal", fmt.Sprintf("expected %d", totals.Subtotal))
	}
	if req.Total != totals.Total {
		if verr == nil {
			verr = &lib.ValidationError{}
		}
		verr.Add("total", fmt.Sprintf("expected %d", totals.Total))
	}
	if verr != nil {
		return verr
	}
	return nil
}

// uniqueCodes drops repeated option codes, keeping the first occurrence.
func uniqueCodes(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
