package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/patrickwarner/oxclient/internal/models"
	"github.com/patrickwarner/oxclient/internal/oxapi"
)

type GetEntityInput struct {
	Kind string `json:"kind" jsonschema:"entity kind: agency, advertiser, campaign, banner, publisher, zone, channel or user"`
	ID   int    `json:"id" jsonschema:"remote identifier of the entity"`
}

type EntityOutput struct {
	Kind   string         `json:"kind"`
	Fields map[string]any `json:"fields"`
}

type ListEntitiesInput struct {
	Kind       string `json:"kind" jsonschema:"kind of the listed entities"`
	ParentKind string `json:"parent_kind,omitempty" jsonschema:"kind of the parent; empty lists every agency"`
	ParentID   int    `json:"parent_id,omitempty" jsonschema:"identifier of the parent"`
}

type ListEntitiesOutput struct {
	Kind  string           `json:"kind"`
	Items []map[string]any `json:"items"`
}

type StatisticsInput struct {
	Kind               string `json:"kind" jsonschema:"entity kind the statistics are about"`
	Breakdown          string `json:"breakdown" jsonschema:"daily, advertiser, campaign, banner, publisher or zone"`
	ID                 int    `json:"id" jsonschema:"remote identifier of the entity"`
	StartDate          string `json:"start_date,omitempty" jsonschema:"first day, YYYY-MM-DD; defaults to 1970-01-01"`
	EndDate            string `json:"end_date,omitempty" jsonschema:"last day, YYYY-MM-DD; defaults to now"`
	UseManagerTimezone bool   `json:"use_manager_timezone,omitempty"`
}

type StatisticsOutput struct {
	Procedure string           `json:"procedure"`
	Rows      []map[string]any `json:"rows"`
}

type LinkInput struct {
	ZoneID     int  `json:"zone_id"`
	BannerID   int  `json:"banner_id,omitempty" jsonschema:"banner to link; exclusive with campaign_id"`
	CampaignID int  `json:"campaign_id,omitempty" jsonschema:"campaign to link; exclusive with banner_id"`
	Unlink     bool `json:"unlink,omitempty" jsonschema:"remove the link instead of creating it"`
}

type LinkOutput struct {
	Success bool `json:"success"`
}

type GenerateTagsInput struct {
	ZoneID   int            `json:"zone_id"`
	CodeType string         `json:"code_type" jsonschema:"invocation tag type, e.g. adjs, adframe, local"`
	Params   map[string]any `json:"params,omitempty"`
}

type GenerateTagsOutput struct {
	Tags any `json:"tags"`
}

// OxServer exposes a logged-on ox client as MCP tools.
type OxServer struct {
	mu     sync.Mutex
	client *oxapi.Client
	logger *zap.Logger
}

func NewOxServer(client *oxapi.Client, logger *zap.Logger) *OxServer {
	return &OxServer{client: client, logger: logger}
}

// Register adds every tool to server.
func (s *OxServer) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_entity",
		Description: "Fetch one entity from the ad server by kind and id",
	}, s.GetEntity)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_entities",
		Description: "List the entities of a kind below a parent entity",
	}, s.ListEntities)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_statistics",
		Description: "Run a statistics report for an entity with a daily or per-entity breakdown",
	}, s.Statistics)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "link_zone",
		Description: "Link or unlink a banner or campaign to a zone",
	}, s.LinkZone)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_tags",
		Description: "Generate invocation code for a zone",
	}, s.GenerateTags)
}

// GetEntity implements get_entity.
func (s *OxServer) GetEntity(ctx context.Context, req *mcp.CallToolRequest, input GetEntityInput) (*mcp.CallToolResult, EntityOutput, error) {
	kind, err := oxapi.ParseKind(input.Kind)
	if err != nil {
		return nil, EntityOutput{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.client.Get(ctx, kind, input.ID)
	if err != nil {
		return nil, EntityOutput{}, fmt.Errorf("get %s %d: %w", kind, input.ID, err)
	}
	return nil, EntityOutput{Kind: string(kind), Fields: rec.ToArray()}, nil
}

// ListEntities implements list_entities.
func (s *OxServer) ListEntities(ctx context.Context, req *mcp.CallToolRequest, input ListEntitiesInput) (*mcp.CallToolResult, ListEntitiesOutput, error) {
	kind, err := oxapi.ParseKind(input.Kind)
	if err != nil {
		return nil, ListEntitiesOutput{}, err
	}
	var parent oxapi.Kind
	if input.ParentKind != "" {
		if parent, err = oxapi.ParseKind(input.ParentKind); err != nil {
			return nil, ListEntitiesOutput{}, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.client.List(ctx, kind, parent, input.ParentID)
	if err != nil {
		return nil, ListEntitiesOutput{}, fmt.Errorf("list %s: %w", kind, err)
	}
	items := make([]map[string]any, len(recs))
	for i, r := range recs {
		items[i] = r.ToArray()
	}
	s.logger.Debug("listed entities", zap.String("kind", string(kind)), zap.Int("count", len(items)))
	return nil, ListEntitiesOutput{Kind: string(kind), Items: items}, nil
}

// Statistics implements get_statistics.
func (s *OxServer) Statistics(ctx context.Context, req *mcp.CallToolRequest, input StatisticsInput) (*mcp.CallToolResult, StatisticsOutput, error) {
	kind, err := oxapi.ParseKind(input.Kind)
	if err != nil {
		return nil, StatisticsOutput{}, err
	}
	breakdown := oxapi.Breakdown(input.Breakdown)
	procedure, err := oxapi.StatisticsProcedure(kind, breakdown)
	if err != nil {
		return nil, StatisticsOutput{}, err
	}
	rng := oxapi.StatisticsRange{UseManagerTimezone: input.UseManagerTimezone}
	if rng.Start, err = parseDay(input.StartDate); err != nil {
		return nil, StatisticsOutput{}, fmt.Errorf("start_date: %w", err)
	}
	if rng.End, err = parseDay(input.EndDate); err != nil {
		return nil, StatisticsOutput{}, fmt.Errorf("end_date: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.client.Statistics(ctx, kind, breakdown, input.ID, rng)
	if err != nil {
		return nil, StatisticsOutput{}, err
	}
	return nil, StatisticsOutput{Procedure: procedure, Rows: rows}, nil
}

// LinkZone implements link_zone.
func (s *OxServer) LinkZone(ctx context.Context, req *mcp.CallToolRequest, input LinkInput) (*mcp.CallToolResult, LinkOutput, error) {
	if (input.BannerID == 0) == (input.CampaignID == 0) {
		return nil, LinkOutput{}, errors.New("exactly one of banner_id and campaign_id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var ok bool
	var err error
	switch {
	case input.BannerID != 0 && input.Unlink:
		ok, err = s.client.UnlinkBanner(ctx, input.ZoneID, input.BannerID)
	case input.BannerID != 0:
		ok, err = s.client.LinkBanner(ctx, input.ZoneID, input.BannerID)
	case input.Unlink:
		ok, err = s.client.UnlinkCampaign(ctx, input.ZoneID, input.CampaignID)
	default:
		ok, err = s.client.LinkCampaign(ctx, input.ZoneID, input.CampaignID)
	}
	if err != nil {
		return nil, LinkOutput{}, err
	}
	return nil, LinkOutput{Success: ok}, nil
}

// GenerateTags implements generate_tags.
func (s *OxServer) GenerateTags(ctx context.Context, req *mcp.CallToolRequest, input GenerateTagsInput) (*mcp.CallToolResult, GenerateTagsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags, err := s.client.GenerateTags(ctx, input.ZoneID, input.CodeType, input.Params)
	if err != nil {
		return nil, GenerateTagsOutput{}, err
	}
	return nil, GenerateTagsOutput{Tags: tags}, nil
}

// parseDay parses YYYY-MM-DD; an empty string yields the zero time.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(models.DayLayout, s)
}
