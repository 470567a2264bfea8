package service

import (
	"encoding/json"

	"github.com/meilisearch/meilisearch-go"

	"github.com/hameema-git/ramzan-challange/internal/dto"
	"github.com/hameema-git/ramzan-challange/internal/model"
	"github.com/hameema-git/ramzan-challange/pkg/logger"
)

const groupsIndex = "groups"

// SearchService keeps the group discovery index in sync and answers
// free-text queries. Indexing is best effort; the database stays the
// source of truth.
type SearchService interface {
	IndexGroup(group *model.Group, memberCount int) error
	DeleteGroup(id string) error
	SearchGroups(query string) ([]dto.GroupSearchHit, error)
}

type searchService struct {
	client meilisearch.ServiceManager
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{client: client}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	if s.client == nil {
		return
	}

	sortable := []string{"member_count", "created_at"}
	if _, err := s.client.Index(groupsIndex).UpdateSortableAttributes(&sortable); err != nil {
		logger.Log.Warn("failed to update groups sortable attributes", logger.Err(err))
	}
}

type meiliGroupDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
	CreatedAt   int64  `json:"created_at"`
}

func (s *searchService) IndexGroup(group *model.Group, memberCount int) error {
	if s.client == nil {
		return nil
	}

	doc := meiliGroupDoc{
		ID:          group.ID.String(),
		Name:        group.Name,
		MemberCount: memberCount,
		CreatedAt:   group.CreatedAt.Unix(),
	}

	_, err := s.client.Index(groupsIndex).AddDocuments([]meiliGroupDoc{doc}, strPtr("id"))
	return err
}

func (s *searchService) DeleteGroup(id string) error {
	if s.client == nil {
		return nil
	}

	_, err := s.client.Index(groupsIndex).DeleteDocument(id)
	return err
}

func (s *searchService) SearchGroups(query string) ([]dto.GroupSearchHit, error) {
	hits := make([]dto.GroupSearchHit, 0)
	if s.client == nil {
		return hits, nil
	}

	result, err := s.client.Index(groupsIndex).Search(query, &meilisearch.SearchRequest{
		Limit: 20,
	})
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(result.Hits)
	if err != nil {
		return nil, err
	}

	var docs []meiliGroupDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	for _, doc := range docs {
		hits = append(hits, dto.GroupSearchHit{
			ID:          doc.ID,
			Name:        doc.Name,
			MemberCount: doc.MemberCount,
		})
	}

	return hits, nil
}

func strPtr(s string) *string {
	return &s
}
