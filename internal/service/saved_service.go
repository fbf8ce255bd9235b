package service

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/model"
	"Mosaic/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type SavedService interface {
	SaveContent(ctx context.Context, userID uint64, req *dto.SaveContentReq) error
	UnsaveContent(ctx context.Context, userID, contentID uint64) error
	MoveSaved(ctx context.Context, userID, contentID uint64, collectionID *uint64) error
	GetSavedContents(ctx context.Context, userID uint64, collectionID *uint64, page, pageSize int) ([]*dto.SavedContentDTO, error)

	CreateCollection(ctx context.Context, userID uint64, name string) (*dto.CollectionDTO, error)
	DeleteCollection(ctx context.Context, userID, collectionID uint64) error
	GetCollections(ctx context.Context, userID uint64) ([]*dto.CollectionDTO, error)
}

type savedServiceImpl struct {
	savedRepo      repository.SavedRepo
	contentRepo    repository.ContentRepo
	contentService ContentService

	now func() time.Time
}

func NewSavedService(savedRepo repository.SavedRepo, contentRepo repository.ContentRepo, contentService ContentService) SavedService {
	return &savedServiceImpl{
		savedRepo:      savedRepo,
		contentRepo:    contentRepo,
		contentService: contentService,
		now:            time.Now,
	}
}

func (s *savedServiceImpl) SaveContent(ctx context.Context, userID uint64, req *dto.SaveContentReq) error {
	if _, err := s.contentRepo.GetContent(ctx, req.ContentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return err
	}

	if req.CollectionID != nil {
		if err := s.checkCollectionOwner(ctx, userID, *req.CollectionID); err != nil {
			return err
		}
	}

	err := s.savedRepo.CreateSaved(ctx, &model.SavedContent{
		UserID:       userID,
		ContentID:    req.ContentID,
		CollectionID: req.CollectionID,
		Note:         req.Note,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if isDuplicateError(err) {
			return ErrContentAlreadySaved
		}
		return err
	}
	return nil
}

func (s *savedServiceImpl) UnsaveContent(ctx context.Context, userID, contentID uint64) error {
	return s.savedRepo.DeleteSaved(ctx, userID, contentID)
}

func (s *savedServiceImpl) MoveSaved(ctx context.Context, userID, contentID uint64, collectionID *uint64) error {
	if _, err := s.savedRepo.GetSaved(ctx, userID, contentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return err
	}

	if collectionID != nil {
		if err := s.checkCollectionOwner(ctx, userID, *collectionID); err != nil {
			return err
		}
	}

	var value interface{}
	if collectionID != nil {
		value = *collectionID
	}
	return s.savedRepo.UpdateSaved(ctx, userID, contentID, map[string]interface{}{"collection_id": value})
}

func (s *savedServiceImpl) GetSavedContents(ctx context.Context, userID uint64, collectionID *uint64, page, pageSize int) ([]*dto.SavedContentDTO, error) {
	if collectionID != nil {
		if err := s.checkCollectionOwner(ctx, userID, *collectionID); err != nil {
			return nil, err
		}
	}

	saved, err := s.savedRepo.ListSaved(ctx, userID, collectionID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SavedContentDTO, 0, len(saved))
	for _, sc := range saved {
		content, err := s.contentService.GetContentDetail(ctx, userID, sc.ContentID)
		if err != nil {
			if errors.Is(err, ErrContentNotFound) {
				continue
			}
			return nil, err
		}
		result = append(result, &dto.SavedContentDTO{
			Content:      content,
			CollectionID: sc.CollectionID,
			Note:         sc.Note,
			SavedAt:      sc.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

func (s *savedServiceImpl) CreateCollection(ctx context.Context, userID uint64, name string) (*dto.CollectionDTO, error) {
	collection := &model.Collection{
		UserID:    userID,
		Name:      name,
		CreatedAt: s.now(),
	}
	if err := s.savedRepo.CreateCollection(ctx, collection); err != nil {
		if isDuplicateError(err) {
			return nil, ErrCollectionNameExist
		}
		return nil, err
	}

	return &dto.CollectionDTO{
		ID:        collection.ID,
		Name:      collection.Name,
		CreatedAt: collection.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *savedServiceImpl) DeleteCollection(ctx context.Context, userID, collectionID uint64) error {
	if err := s.checkCollectionOwner(ctx, userID, collectionID); err != nil {
		return err
	}
	return s.savedRepo.DeleteCollection(ctx, userID, collectionID)
}

func (s *savedServiceImpl) GetCollections(ctx context.Context, userID uint64) ([]*dto.CollectionDTO, error) {
	collections, err := s.savedRepo.ListCollections(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CollectionDTO, 0, len(collections))
	for _, c := range collections {
		count, err := s.savedRepo.CountSavedInCollection(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &dto.CollectionDTO{
			ID:         c.ID,
			Name:       c.Name,
			SavedCount: count,
			CreatedAt:  c.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

func (s *savedServiceImpl) checkCollectionOwner(ctx context.Context, userID, collectionID uint64) error {
	collection, err := s.savedRepo.GetCollection(ctx, collectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCollectionNotFound
		}
		return err
	}
	if collection.UserID != userID {
		return UnauthorizedError
	}
	return nil
}
