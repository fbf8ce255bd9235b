package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/conflicts"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 400

type ContentRepo interface {
	SearchContents(ctx context.Context, queryText string, lastSortValues []interface{}, size int) ([]*ContentES, error)
	SearchByHashtag(ctx context.Context, tag string, from, size int) ([]*ContentES, error)
	GetLatestByCursor(ctx context.Context, lastSortValues []interface{}, size int) ([]*ContentES, error)
	IndexContent(ctx context.Context, content *ContentES, version int64) error
	DeleteContent(ctx context.Context, id uint64) error
	UpdateContentUsername(ctx context.Context, userID uint64, newUsername string) error
}

type ContentRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewContentRepo(client *elasticsearch.TypedClient) ContentRepo {
	return &ContentRepoImpl{client: client}
}

// SearchContents 全文搜索，按相关度降序，id 兜底保证游标稳定
func (s *ContentRepoImpl) SearchContents(ctx context.Context, queryText string, lastSortValues []interface{}, size int) ([]*ContentES, error) {
	fuzziness := "AUTO"
	req := s.client.Search().Index(ContentIndex).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Must: []types.Query{
					{
						MultiMatch: &types.MultiMatchQuery{
							Query:     queryText,
							Fields:    []string{"title^3", "description", "hashtags^2"},
							Fuzziness: fuzziness,
						},
					},
				},
				Filter: []types.Query{
					{Term: map[string]types.TermQuery{"is_archived": {Value: false}}},
				},
			},
		}).
		Sort(
			types.SortOptions{SortOptions: map[string]types.FieldSort{
				"_score": {Order: &sortorder.Desc},
			}},
			types.SortOptions{SortOptions: map[string]types.FieldSort{
				"id": {Order: &sortorder.Asc},
			}},
		).
		Size(size)

	applyCursor(req, lastSortValues)

	return s.executeSearch(ctx, req)
}

func (s *ContentRepoImpl) SearchByHashtag(ctx context.Context, tag string, from, size int) ([]*ContentES, error) {
	if from >= MaxSearchDepth {
		return []*ContentES{}, nil
	}

	req := s.client.Search().
		Index(ContentIndex).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Must: []types.Query{
					{Term: map[string]types.TermQuery{"hashtags": {Value: tag}}},
				},
				Filter: []types.Query{
					{Term: map[string]types.TermQuery{"is_archived": {Value: false}}},
				},
			},
		}).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"created_at": {Order: &sortorder.Desc},
		}}).
		From(from).
		Size(size)

	return s.executeSearch(ctx, req)
}

func (s *ContentRepoImpl) GetLatestByCursor(ctx context.Context, lastSortValues []interface{}, size int) ([]*ContentES, error) {
	req := s.client.Search().
		Index(ContentIndex).
		Query(&types.Query{
			Term: map[string]types.TermQuery{"is_archived": {Value: false}},
		}).
		Sort(
			types.SortOptions{SortOptions: map[string]types.FieldSort{
				"created_at": {Order: &sortorder.Desc},
			}},
			types.SortOptions{SortOptions: map[string]types.FieldSort{
				"id": {Order: &sortorder.Asc},
			}},
		).
		Size(size)

	applyCursor(req, lastSortValues)

	return s.executeSearch(ctx, req)
}

// IndexContent 外部版本号写入，CDC 乱序到达时旧版本直接丢弃
func (s *ContentRepoImpl) IndexContent(ctx context.Context, content *ContentES, version int64) error {
	docID := strconv.FormatUint(content.ID, 10)

	_, err := s.client.Index(ContentIndex).
		Id(docID).
		Document(content).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *ContentRepoImpl) DeleteContent(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)

	_, err := s.client.Delete(ContentIndex, docID).Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *ContentRepoImpl) UpdateContentUsername(ctx context.Context, userID uint64, newUsername string) error {
	usernameJSON, _ := json.Marshal(newUsername)

	params := map[string]json.RawMessage{
		"new_username": json.RawMessage(usernameJSON),
	}

	scriptSource := "ctx._source.username = params.new_username;"

	req := s.client.UpdateByQuery(ContentIndex).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"user_id": {Value: userID},
			},
		}).
		Script(&types.Script{
			Source: &scriptSource,
			Params: params,
		}).
		Conflicts(conflicts.Proceed)

	resp, err := req.Do(ctx)
	if err != nil {
		return err
	}

	if len(resp.Failures) != 0 {
		return errors.New("content index: update username has failures")
	}

	return nil
}

func applyCursor(req *search.Search, lastSortValues []interface{}) {
	if len(lastSortValues) == 0 {
		return
	}
	searchAfterValues := make([]types.FieldValue, len(lastSortValues))
	for i, v := range lastSortValues {
		searchAfterValues[i] = v
	}
	req.SearchAfter(searchAfterValues...)
}

func (s *ContentRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]*ContentES, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*ContentES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var content ContentES
		if hit.Source_ == nil {
			continue
		}
		if err = json.Unmarshal(hit.Source_, &content); err != nil {
			continue
		}
		if len(hit.Sort) > 0 {
			content.Sort = make([]interface{}, len(hit.Sort))
			for i, v := range hit.Sort {
				content.Sort[i] = v
			}
		}
		results = append(results, &content)
	}
	return results, nil
}
