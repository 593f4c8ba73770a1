package supabase

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"

	"github.com/Catacombb/f9-sub000/internal/config"
)

// Client wraps the hosted Supabase API client. Day-to-day queries go through
// the direct PostgreSQL connection; this client exists for server-side RPCs
// that the hosted platform exposes as database functions.
type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

// CreateClientProject invokes the create_client_project database function,
// which inserts at most one project per user and returns its id. Callers
// fall back to a direct insert when the RPC is unavailable.
func (c *Client) CreateClientProject(userID uuid.UUID) (uuid.UUID, error) {
	result := c.Supabase.Rpc("create_client_project", "", map[string]string{
		"p_user_id": userID.String(),
	})
	if result == "" {
		return uuid.Nil, fmt.Errorf("create_client_project returned no result")
	}

	var idStr string
	if err := json.Unmarshal([]byte(result), &idStr); err != nil {
		return uuid.Nil, fmt.Errorf("unexpected rpc result %q: %w", result, err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("rpc returned invalid project id %q: %w", idStr, err)
	}
	return id, nil
}
