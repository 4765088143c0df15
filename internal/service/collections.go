package service

import (
	"context"

	"github.com/tempizhere/linkvault/internal/models"
	"github.com/tempizhere/linkvault/internal/store"
)

// ListCollections возвращает коллекции, новые первыми
func (s *Service) ListCollections(ctx context.Context) ([]models.Collection, error) {
	rows, err := s.selectRows(ctx, store.TableCollections, nil, store.OrderBy("created_at", true))
	if err != nil {
		return nil, err
	}
	collections := make([]models.Collection, 0, len(rows))
	for _, r := range rows {
		collections = append(collections, collectionFromRow(r))
	}
	return collections, nil
}

// GetCollection возвращает коллекцию вместе с её списками
func (s *Service) GetCollection(ctx context.Context, id int64) (models.CollectionView, error) {
	row, err := s.selectOne(ctx, store.TableCollections, id)
	if err != nil {
		return models.CollectionView{}, err
	}
	listRows, err := s.selectRows(ctx, store.TableLists, store.Filter{"id_collection": id}, store.OrderBy("id", false))
	if err != nil {
		return models.CollectionView{}, err
	}
	view := models.CollectionView{
		Collection: collectionFromRow(row),
		Lists:      make([]models.UserList, 0, len(listRows)),
	}
	for _, r := range listRows {
		view.Lists = append(view.Lists, listFromRow(r))
	}
	return view, nil
}

// CreateCollection создаёт коллекцию. Если владелец не указан в теле, им становится userID.
func (s *Service) CreateCollection(ctx context.Context, in models.CollectionInput, userID string) (models.Collection, error) {
	row := collectionPatch(in)
	if !row.Has("user_id") && userID != "" {
		row["user_id"] = userID
	}
	row["created_at"] = s.now().UTC()

	inserted, err := s.insertOne(ctx, store.TableCollections, row)
	if err != nil {
		return models.Collection{}, err
	}
	return collectionFromRow(inserted), nil
}

// UpdateCollection изменяет коллекцию
func (s *Service) UpdateCollection(ctx context.Context, id int64, in models.CollectionInput) (models.Collection, error) {
	row, err := s.updateOne(ctx, store.TableCollections, id, collectionPatch(in))
	if err != nil {
		return models.Collection{}, err
	}
	return collectionFromRow(row), nil
}

// DeleteCollection удаляет коллекцию
func (s *Service) DeleteCollection(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, store.TableCollections, id)
}
