package oxapi

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/patrickwarner/oxclient/internal/models"
)

// Kind names the entity kinds addressable through the generic operations.
type Kind string

const (
	KindAgency     Kind = "agency"
	KindAdvertiser Kind = "advertiser"
	KindCampaign   Kind = "campaign"
	KindBanner     Kind = "banner"
	KindPublisher  Kind = "publisher"
	KindZone       Kind = "zone"
	KindChannel    Kind = "channel"
	KindUser       Kind = "user"

	// Parent-only kinds: channels and users are listed by them but they have
	// no records of their own here.
	KindWebsite Kind = "website"
	KindAccount Kind = "account"
)

// ErrUnknownKind is returned by the kind-generic operations for a kind or
// parent relation the service has no procedure for.
var ErrUnknownKind = errors.New("unknown entity kind")

// addEntity sends a new record and returns the identifier assigned by the
// service. Kinds with add-time defaults are defaulted by the typed wrappers on
// a copy, so the caller's record is left as it was.
func addEntity(ctx context.Context, c *Client, method string, e models.Entity) (int, error) {
	if isNilPointer(e) {
		return 0, &models.UnsupportedEncodingError{Value: e}
	}
	result, err := c.SendWithSession(ctx, method, e)
	if err != nil {
		return 0, err
	}
	return decodeID(method, result)
}

func modifyEntity(ctx context.Context, c *Client, method string, e models.Entity) (bool, error) {
	if isNilPointer(e) {
		return false, &models.UnsupportedEncodingError{Value: e}
	}
	if _, ok := e.AsRecord().ID(); !ok {
		return false, fmt.Errorf("%s: %s record carries no %s", method, e.AsRecord().Kind(), e.AsRecord().Schema().IDField())
	}
	result, err := c.SendWithSession(ctx, method, e)
	if err != nil {
		return false, err
	}
	return decodeBool(method, result)
}

func getEntity[E models.Entity](ctx context.Context, c *Client, method string, newEntity func() E, id int) (E, error) {
	var zero E
	result, err := c.SendWithSession(ctx, method, id)
	if err != nil {
		return zero, err
	}
	wire, err := decodeStruct(method, result)
	if err != nil {
		return zero, err
	}
	e := newEntity()
	if err := e.AsRecord().ReadDataFromArray(wire); err != nil {
		return zero, fmt.Errorf("%s: %w", method, err)
	}
	return e, nil
}

// listEntities hydrates one record per returned wire map in server order.
func listEntities[E models.Entity](ctx context.Context, c *Client, method string, newEntity func() E, args ...any) ([]E, error) {
	result, err := c.SendWithSession(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList(method, result)
	if err != nil {
		return nil, err
	}
	out := make([]E, 0, len(rows))
	for _, row := range rows {
		e := newEntity()
		if err := e.AsRecord().ReadDataFromArray(row); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func callBool(ctx context.Context, c *Client, method string, args ...any) (bool, error) {
	result, err := c.SendWithSession(ctx, method, args...)
	if err != nil {
		return false, err
	}
	return decodeBool(method, result)
}

func getTargeting(ctx context.Context, c *Client, method string, id int) ([]*models.Targeting, error) {
	result, err := c.SendWithSession(ctx, method, id)
	if err != nil {
		return nil, err
	}
	rows, err := decodeList(method, result)
	if err != nil {
		return nil, err
	}
	rules, err := models.TargetingFromArray(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return rules, nil
}

// Get fetches one entity of any kind. It backs the kind-agnostic command-line
// and agent surfaces; typed callers should prefer GetCampaign and friends.
func (c *Client) Get(ctx context.Context, kind Kind, id int) (*models.Record, error) {
	newEntity, ok := kindFactories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	e, err := getEntity(ctx, c, "ox.get"+exported(kind), newEntity, id)
	if err != nil {
		return nil, err
	}
	return e.AsRecord(), nil
}

// List fetches the children of kind under the parent kind's identifier,
// e.g. List(ctx, KindCampaign, KindAdvertiser, 12).
func (c *Client) List(ctx context.Context, kind, parent Kind, parentID int) ([]*models.Record, error) {
	newEntity, ok := kindFactories[kind]
	if !ok || !hasListProcedure(kind, parent) {
		return nil, fmt.Errorf("%w: %s list by %s", ErrUnknownKind, kind, parent)
	}
	method := "ox.get" + exported(kind) + "ListBy" + exported(parent) + "Id"
	var args []any
	if parent == "" {
		method = "ox.get" + exported(kind) + "List"
	} else {
		args = []any{parentID}
	}
	es, err := listEntities(ctx, c, method, newEntity, args...)
	if err != nil {
		return nil, err
	}
	return records(es), nil
}

func records(es []models.Entity) []*models.Record {
	out := make([]*models.Record, len(es))
	for i, e := range es {
		out[i] = e.AsRecord()
	}
	return out
}

var kindFactories = map[Kind]func() models.Entity{
	KindAgency:     func() models.Entity { return models.NewAgency() },
	KindAdvertiser: func() models.Entity { return models.NewAdvertiser() },
	KindCampaign:   func() models.Entity { return models.NewCampaign() },
	KindBanner:     func() models.Entity { return models.NewBanner() },
	KindPublisher:  func() models.Entity { return models.NewPublisher() },
	KindZone:       func() models.Entity { return models.NewZone() },
	KindChannel:    func() models.Entity { return models.NewChannel() },
	KindUser:       func() models.Entity { return models.NewUser() },
}

// listParents maps each kind to the parents it can be listed by. The empty
// parent lists every record of the kind.
var listParents = map[Kind][]Kind{
	KindAgency:     {""},
	KindAdvertiser: {KindAgency},
	KindCampaign:   {KindAdvertiser},
	KindBanner:     {KindCampaign},
	KindPublisher:  {KindAgency},
	KindZone:       {KindPublisher},
	KindChannel:    {KindAgency, KindWebsite},
	KindUser:       {KindAccount},
}

func hasListProcedure(kind, parent Kind) bool {
	return slices.Contains(listParents[kind], parent)
}

// ParseKind maps a kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := kindFactories[k]; ok {
		return k, nil
	}
	if k == KindWebsite || k == KindAccount {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func exported(k Kind) string {
	if k == "" {
		return ""
	}
	return string(k[0]-'a'+'A') + string(k[1:])
}
