package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	weaviate "github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/auth"
	gql "github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"

	"github.com/civicgrid/proposal-service/internal/model"
)

// className is the Weaviate class holding proposal objects.
const className = "CivicProposal"

// keyNamespace seeds the deterministic object-ID derivation. Weaviate object
// IDs must be UUIDs, so each storage key maps to UUIDv5(keyNamespace, key).
// Stable by construction: the same proposal id always lands on the same object.
var keyNamespace = uuid.MustParse("1f0c9b7e-5a3d-4e8b-9c2a-7d4f6e8a1b3c")

// weavNative is a native implementation of Store using the Weaviate Go client.
type weavNative struct {
	client  *weaviate.Client
	baseURL string // host:port without scheme
}

// NewWeaviateNativeStore constructs a Store backed by Weaviate at baseURL.
// baseURL should be host:port (without scheme), e.g. "localhost:8081".
func NewWeaviateNativeStore(baseURL, apiKey string) (Store, error) {
	cfg := weaviate.Config{Scheme: "http", Host: baseURL}
	if apiKey != "" {
		cfg.AuthConfig = auth.ApiKey{Value: apiKey}
	}
	cl, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &weavNative{client: cl, baseURL: baseURL}, nil
}

// ObjectID returns the Weaviate object UUID for a storage key.
func ObjectID(key string) string {
	return uuid.NewSHA1(keyNamespace, []byte(key)).String()
}

// Upsert deletes any object stored under key and recreates it with the given
// vector and metadata. Weaviate has no single create-or-replace call for
// objects with explicit vectors, so the overwrite is two steps keyed by the
// same derived UUID.
func (w *weavNative) Upsert(ctx context.Context, key string, vec []float32, rec model.ProposalRecord) error {
	id := ObjectID(key)

	exists, err := w.client.Data().Checker().WithClassName(className).WithID(id).Do(ctx)
	if err != nil {
		return fmt.Errorf("weaviate exists check: %w", err)
	}
	if exists {
		if err := w.client.Data().Deleter().WithClassName(className).WithID(id).Do(ctx); err != nil {
			return fmt.Errorf("weaviate delete before upsert: %w", err)
		}
	}

	_, err = w.client.Data().Creator().
		WithClassName(className).
		WithID(id).
		WithProperties(recordToProperties(rec)).
		WithVector(vec).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("weaviate create: %w", err)
	}
	log.Debug().Str("key", key).Str("objectId", id).Msg("proposal upserted")
	return nil
}

// Fetch returns the stored record and vector for key.
func (w *weavNative) Fetch(ctx context.Context, key string) (*model.StoredProposal, error) {
	id := ObjectID(key)

	exists, err := w.client.Data().Checker().WithClassName(className).WithID(id).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("weaviate exists check: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	objs, err := w.client.Data().ObjectsGetter().
		WithClassName(className).
		WithID(id).
		WithVector().
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("weaviate fetch: %w", err)
	}
	if len(objs) == 0 {
		return nil, model.ErrNotFound
	}

	props, ok := objs[0].Properties.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("weaviate object %s has no properties", id)
	}
	return &model.StoredProposal{
		Record: propertiesToRecord(props),
		Vector: objs[0].Vector,
	}, nil
}

// Search runs a nearVector query and returns the stored metadata of the
// nearest objects in the index's ranking order.
func (w *weavNative) Search(ctx context.Context, vec []float32, limit int) ([]model.ProposalRecord, error) {
	nv := w.client.GraphQL().NearVectorArgBuilder().WithVector(vec)

	req := w.client.GraphQL().Get().
		WithClassName(className).
		WithNearVector(nv).
		WithLimit(limit).
		WithFields(
			gql.Field{Name: "proposalId"},
			gql.Field{Name: "vectorId"},
			gql.Field{Name: "text"},
			gql.Field{Name: "summary"},
			gql.Field{Name: "category"},
			gql.Field{Name: "submitter"},
			gql.Field{Name: "timestamp"},
			gql.Field{Name: "likes"},
			gql.Field{Name: "dislikes"},
			gql.Field{Name: "hasVoted"},
			gql.Field{Name: "userVote"},
		)

	resp, err := req.Do(ctx)
	if err != nil {
		log.Error().Err(err).Msg("weaviate graphql query failed")
		return nil, err
	}
	if len(resp.Errors) > 0 {
		log.Error().Interface("errors", resp.Errors).Msg("weaviate graphql errors")
		return nil, fmt.Errorf("weaviate graphql: %s", formatGraphQLErrors(resp.Errors))
	}

	getData, ok := resp.Data["Get"].(map[string]interface{})
	if !ok {
		log.Warn().Msg("weaviate response has no Get data")
		return []model.ProposalRecord{}, nil
	}
	val := getData[className]
	if val == nil {
		return []model.ProposalRecord{}, nil
	}
	raw, ok := val.([]interface{})
	if !ok {
		log.Warn().Interface("val", val).Msg("search result is not an array")
		return []model.ProposalRecord{}, nil
	}

	out := make([]model.ProposalRecord, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, propertiesToRecord(m))
	}
	log.Debug().Int("results", len(out)).Msg("weaviate search completed")
	return out, nil
}

// HealthPing implements vectorstore.HealthPinger for the weaviate store.
// It calls GET http://<baseURL>/v1/meta and expects 200 OK.
func (w *weavNative) HealthPing(ctx context.Context) error {
	if w == nil || w.baseURL == "" {
		return fmt.Errorf("weaviate baseURL missing")
	}
	url := w.baseURL
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/v1/meta", nil)
	if err != nil {
		return err
	}
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weaviate status %d", resp.StatusCode)
	}
	return nil
}

// recordToProperties flattens a record into the Weaviate property map.
// "id" is reserved in GraphQL, hence the proposalId property name.
func recordToProperties(rec model.ProposalRecord) map[string]interface{} {
	return map[string]interface{}{
		"proposalId": rec.ID,
		"vectorId":   rec.VectorID,
		"text":       rec.Text,
		"summary":    rec.Summary,
		"category":   rec.Category,
		"submitter":  rec.Submitter,
		"timestamp":  rec.Timestamp,
		"likes":      rec.Likes,
		"dislikes":   rec.Dislikes,
		"hasVoted":   rec.HasVoted,
		"userVote":   rec.UserVote,
	}
}

func propertiesToRecord(m map[string]interface{}) model.ProposalRecord {
	return model.ProposalRecord{
		ID:        safeString(m["proposalId"]),
		VectorID:  safeString(m["vectorId"]),
		Text:      safeString(m["text"]),
		Summary:   safeString(m["summary"]),
		Category:  safeString(m["category"]),
		Submitter: safeString(m["submitter"]),
		Timestamp: safeString(m["timestamp"]),
		Likes:     safeInt(m["likes"]),
		Dislikes:  safeInt(m["dislikes"]),
		HasVoted:  safeBool(m["hasVoted"]),
		UserVote:  safeBool(m["userVote"]),
	}
}

func safeString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// safeInt tolerates the numeric shapes Weaviate responses use: JSON numbers
// decode as float64, int properties round-trip as json.Number in some paths.
func safeInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return 0
}

func safeBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

// formatGraphQLErrors returns compact string with messages extracted for logging.
func formatGraphQLErrors(errs interface{}) string {
	if b, err := json.Marshal(errs); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", errs)
}
