package client

import (
	"context"
	"slices"

	"github.com/tempizhere/linkvault/internal/models"
)

// LinkStore кэширует ссылки и коллекции пользователя
type LinkStore struct {
	c *Client

	Links       *State[[]models.LinkView]
	Collections *State[[]models.Collection]
	Loading     *State[bool]
	Err         *State[error]
}

// NewLinkStore создаёт пустой кэш ссылок
func NewLinkStore(c *Client) *LinkStore {
	return &LinkStore{
		c:           c,
		Links:       NewState[[]models.LinkView](nil),
		Collections: NewState[[]models.Collection](nil),
		Loading:     NewState(false),
		Err:         NewState[error](nil),
	}
}

// track выставляет Loading на время fn и сохраняет её ошибку
func track(loading *State[bool], errState *State[error], fn func() error) error {
	loading.Set(true)
	defer loading.Set(false)
	err := fn()
	errState.Set(err)
	return err
}

// FetchLinks загружает ссылки
func (s *LinkStore) FetchLinks(ctx context.Context) error {
	return track(s.Loading, s.Err, func() error {
		links, err := s.c.Links(ctx)
		if err != nil {
			return err
		}
		s.Links.Set(links)
		return nil
	})
}

// FetchCollections загружает коллекции
func (s *LinkStore) FetchCollections(ctx context.Context) error {
	return track(s.Loading, s.Err, func() error {
		collections, err := s.c.Collections(ctx)
		if err != nil {
			return err
		}
		s.Collections.Set(collections)
		return nil
	})
}

// AddLink создаёт ссылку и добавляет её в начало кэша
func (s *LinkStore) AddLink(ctx context.Context, req models.CreateLinkRequest) (int64, error) {
	var id int64
	err := track(s.Loading, s.Err, func() error {
		created, err := s.c.CreateLink(ctx, req)
		if err != nil {
			return err
		}
		link, err := s.c.Link(ctx, created.ID)
		if err != nil {
			return err
		}
		id = created.ID
		s.Links.Update(func(links []models.LinkView) []models.LinkView {
			return append([]models.LinkView{link}, links...)
		})
		return nil
	})
	return id, err
}

// RemoveLink удаляет ссылку
func (s *LinkStore) RemoveLink(ctx context.Context, id int64) error {
	return track(s.Loading, s.Err, func() error {
		if err := s.c.DeleteLink(ctx, id); err != nil {
			return err
		}
		s.Links.Update(func(links []models.LinkView) []models.LinkView {
			return slices.DeleteFunc(slices.Clone(links), func(l models.LinkView) bool { return l.ID == id })
		})
		return nil
	})
}

// AddCollection создаёт коллекцию и добавляет её в начало кэша
func (s *LinkStore) AddCollection(ctx context.Context, in models.CollectionInput) (models.Collection, error) {
	var collection models.Collection
	err := track(s.Loading, s.Err, func() error {
		var err error
		collection, err = s.c.CreateCollection(ctx, in)
		if err != nil {
			return err
		}
		s.Collections.Update(func(cs []models.Collection) []models.Collection {
			return append([]models.Collection{collection}, cs...)
		})
		return nil
	})
	return collection, err
}

// ListStore кэширует списки пользователя и элементы открытого списка
type ListStore struct {
	c *Client

	Lists   *State[[]models.UserList]
	Items   *State[[]models.ListItem]
	Loading *State[bool]
	Err     *State[error]
}

// NewListStore создаёт пустой кэш списков
func NewListStore(c *Client) *ListStore {
	return &ListStore{
		c:       c,
		Lists:   NewState[[]models.UserList](nil),
		Items:   NewState[[]models.ListItem](nil),
		Loading: NewState(false),
		Err:     NewState[error](nil),
	}
}

// FetchLists загружает списки
func (s *ListStore) FetchLists(ctx context.Context) error {
	return track(s.Loading, s.Err, func() error {
		lists, err := s.c.Lists(ctx)
		if err != nil {
			return err
		}
		s.Lists.Set(lists)
		return nil
	})
}

// FetchItems загружает элементы списка
func (s *ListStore) FetchItems(ctx context.Context, listID int64) error {
	return track(s.Loading, s.Err, func() error {
		items, err := s.c.ListItems(ctx, listID)
		if err != nil {
			return err
		}
		s.Items.Set(items)
		return nil
	})
}

// CreateList создаёт список и добавляет его в начало кэша
func (s *ListStore) CreateList(ctx context.Context, in models.ListInput) (models.UserList, error) {
	var list models.UserList
	err := track(s.Loading, s.Err, func() error {
		var err error
		list, err = s.c.CreateList(ctx, in)
		if err != nil {
			return err
		}
		s.Lists.Update(func(lists []models.UserList) []models.UserList {
			return append([]models.UserList{list}, lists...)
		})
		return nil
	})
	return list, err
}

// UpdateList изменяет список и заменяет его в кэше
func (s *ListStore) UpdateList(ctx context.Context, id int64, in models.ListInput) (models.UserList, error) {
	var list models.UserList
	err := track(s.Loading, s.Err, func() error {
		var err error
		list, err = s.c.UpdateList(ctx, id, in)
		if err != nil {
			return err
		}
		s.Lists.Update(func(lists []models.UserList) []models.UserList {
			out := slices.Clone(lists)
			for i := range out {
				if out[i].ID == id {
					out[i] = list
				}
			}
			return out
		})
		return nil
	})
	return list, err
}

// DeleteList удаляет список
func (s *ListStore) DeleteList(ctx context.Context, id int64) error {
	return track(s.Loading, s.Err, func() error {
		if err := s.c.DeleteList(ctx, id); err != nil {
			return err
		}
		s.Lists.Update(func(lists []models.UserList) []models.UserList {
			return slices.DeleteFunc(slices.Clone(lists), func(l models.UserList) bool { return l.ID == id })
		})
		return nil
	})
}

// AddItem добавляет ссылку в список
func (s *ListStore) AddItem(ctx context.Context, listID, linkID int64) (models.ListItem, error) {
	var item models.ListItem
	err := track(s.Loading, s.Err, func() error {
		var err error
		item, err = s.c.AddListItem(ctx, models.ListItemInput{IDList: listID, IDSrc: linkID})
		if err != nil {
			return err
		}
		s.Items.Update(func(items []models.ListItem) []models.ListItem {
			return append([]models.ListItem{item}, items...)
		})
		return nil
	})
	return item, err
}

// RemoveItem удаляет элемент списка
func (s *ListStore) RemoveItem(ctx context.Context, itemID int64) error {
	return track(s.Loading, s.Err, func() error {
		if err := s.c.RemoveListItem(ctx, itemID); err != nil {
			return err
		}
		s.Items.Update(func(items []models.ListItem) []models.ListItem {
			return slices.DeleteFunc(slices.Clone(items), func(it models.ListItem) bool { return it.ID == itemID })
		})
		return nil
	})
}
