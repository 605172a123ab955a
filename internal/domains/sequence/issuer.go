package sequence

//go:generate go run go.uber.org/mock/mockgen -source=./issuer.go -destination=./mocks/issuer_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookit/infras/otel"
	"bookit/internal/events"
	"bookit/permissions"
	"bookit/shared/actor"
	"bookit/shared/constant"
	"bookit/shared/failure"
	"bookit/shared/timezone"
)

type IssueRequest struct {
	Date string `json:"date" validate:"omitempty,day"`
}

type IssueResponse struct {
	Kind string `json:"kind"`
	BID  string `json:"bid"`
	Date string `json:"date"`
}

// Issuer hands out expense and income identifiers to staff. Booking and
// request identifiers are only issued by the flows that create them.
type Issuer interface {
	Issue(ctx context.Context, scope actor.Scope, kind Kind, req IssueRequest) (IssueResponse, error)
}

type issuer struct {
	sequence Sequence
	policy   permissions.Policy
	events   events.Publisher
	otel     otel.Otel
}

func NewIssuer(sequence Sequence, policy permissions.Policy, events events.Publisher, otel otel.Otel) Issuer {
	return &issuer{
		sequence: sequence,
		policy:   policy,
		events:   events,
		otel:     otel,
	}
}

func (i *issuer) Issue(ctx context.Context, scope actor.Scope, kind Kind, req IssueRequest) (res IssueResponse, err error) {
	ctx, otelScope := i.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Issue")
	defer otelScope.End()
	defer func() { otelScope.TraceIfError(err) }()

	if !i.policy.Allowed(scope.Actor.Role, permissions.ActionSequenceIssue) {
		return res, failure.Forbidden("you don't have permission to issue identifiers")
	}

	if kind != KindExpense && kind != KindIncome {
		return res, failure.BadRequestFromString(fmt.Sprintf("identifiers of kind %q cannot be issued directly, expected expense or income", kind))
	}

	date := timezone.Now()

	if req.Date != constant.Empty {
		date, err = timezone.ParseDay(req.Date)
		if err != nil {
			return res, failure.BadRequestFromString("date must use the YYYY-MM-DD format")
		}
	}

	bid, err := i.sequence.Next(ctx, kind, scope.StoreID, date)
	if err != nil {
		log.Error().Err(err).Str("store_id", scope.StoreID).Str("kind", string(kind)).Msg("failed to issue identifier")

		return res, fmt.Errorf("failed to issue identifier: %w", err)
	}

	i.events.Audit(ctx, events.Audit{
		Type:        events.TypeSequenceIssued,
		EntityType:  events.EntitySequence,
		EntityID:    bid,
		StoreID:     scope.StoreID,
		ActorID:     scope.Actor.ID,
		Description: fmt.Sprintf("%s identifier %s issued", kind, bid),
	})

	return IssueResponse{
		Kind: string(kind),
		BID:  bid,
		Date: date.Format(constant.DayLayout),
	}, nil
}
