package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tempizhere/linkvault/internal/models"
	"github.com/tempizhere/linkvault/internal/store"
)

// ListLists возвращает списки пользователей, новые первыми
func (s *Service) ListLists(ctx context.Context) ([]models.UserList, error) {
	rows, err := s.selectRows(ctx, store.TableLists, nil, store.OrderBy("created_at", true))
	if err != nil {
		return nil, err
	}
	lists := make([]models.UserList, 0, len(rows))
	for _, r := range rows {
		lists = append(lists, listFromRow(r))
	}
	return lists, nil
}

// GetList возвращает список вместе со ссылками из его элементов в порядке добавления.
// Элементы, чья ссылка уже удалена, пропускаются.
func (s *Service) GetList(ctx context.Context, id int64) (models.ListView, error) {
	row, err := s.selectOne(ctx, store.TableLists, id)
	if err != nil {
		return models.ListView{}, err
	}
	view := models.ListView{UserList: listFromRow(row), Links: make([]models.Link, 0)}

	items, err := s.selectRows(ctx, store.TableListItems, store.Filter{"id_list": id}, store.OrderBy("id", false))
	if err != nil {
		return models.ListView{}, err
	}
	if len(items) == 0 {
		return view, nil
	}
	srcIDs := make([]int64, 0, len(items))
	for _, item := range items {
		src, _ := item.Int64("id_src")
		srcIDs = append(srcIDs, src)
	}

	linkRows, err := s.selectRows(ctx, store.TableLinks, store.Filter{"id": srcIDs})
	if err != nil {
		return models.ListView{}, err
	}
	links := make(map[int64]models.Link, len(linkRows))
	for _, r := range linkRows {
		link := linkFromRow(r)
		links[link.ID] = link
	}
	for _, src := range srcIDs {
		if link, ok := links[src]; ok {
			view.Links = append(view.Links, link)
		}
	}
	return view, nil
}

// CreateList создаёт список. Если владелец не указан в теле, им становится userID.
func (s *Service) CreateList(ctx context.Context, in models.ListInput, userID string) (models.UserList, error) {
	row := listPatch(in)
	if !row.Has("id_user") && userID != "" {
		row["id_user"] = userID
	}
	now := s.now().UTC()
	row["created_at"] = now
	row["modified_at"] = now

	inserted, err := s.insertOne(ctx, store.TableLists, row)
	if err != nil {
		return models.UserList{}, err
	}
	list := listFromRow(inserted)
	s.logger.Info("List created", zap.Int64("id", list.ID), zap.String("user_id", list.IDUser))
	return list, nil
}

// UpdateList изменяет список и обновляет modified_at
func (s *Service) UpdateList(ctx context.Context, id int64, in models.ListInput) (models.UserList, error) {
	patch := listPatch(in)
	if len(patch) == 0 {
		return models.UserList{}, ErrEmptyPatch
	}
	patch["modified_at"] = s.now().UTC()

	row, err := s.updateOne(ctx, store.TableLists, id, patch)
	if err != nil {
		return models.UserList{}, err
	}
	return listFromRow(row), nil
}

// DeleteList удаляет список; его элементы остаются в хранилище
func (s *Service) DeleteList(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, store.TableLists, id)
}

// ListItems возвращает элементы списка в порядке добавления
func (s *Service) ListItems(ctx context.Context, listID int64) ([]models.ListItem, error) {
	rows, err := s.selectRows(ctx, store.TableListItems, store.Filter{"id_list": listID}, store.OrderBy("id", false))
	if err != nil {
		return nil, err
	}
	items := make([]models.ListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, listItemFromRow(r))
	}
	return items, nil
}

// AddListItem добавляет ссылку в список. Повторное добавление той же пары
// (id_list, id_src) создаёт ещё один элемент.
func (s *Service) AddListItem(ctx context.Context, in models.ListItemInput) (models.ListItem, error) {
	if in.IDList == 0 || in.IDSrc == 0 {
		return models.ListItem{}, ErrMissingItemRef
	}
	inserted, err := s.insertOne(ctx, store.TableListItems, store.Row{
		"id_list":    in.IDList,
		"id_src":     in.IDSrc,
		"created_at": s.now().UTC(),
	})
	if err != nil {
		return models.ListItem{}, err
	}
	return listItemFromRow(inserted), nil
}

// RemoveListItem удаляет элемент списка по его id
func (s *Service) RemoveListItem(ctx context.Context, itemID int64) error {
	if itemID == 0 {
		return ErrMissingItemID
	}
	return s.deleteByID(ctx, store.TableListItems, itemID)
}
