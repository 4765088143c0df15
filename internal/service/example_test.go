package service_test

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tempizhere/linkvault/internal/models"
	"github.com/tempizhere/linkvault/internal/service"
	"github.com/tempizhere/linkvault/internal/store"
)

// ExampleService_CreateLinkWithAssociations демонстрирует создание ссылки со статусом и классификацией
func ExampleService_CreateLinkWithAssociations() {
	// Создаём сервис с in-memory хранилищем
	svc := service.NewService(store.NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	name, url, user := "Go", "https://go.dev", "user-123"
	created, err := svc.CreateLinkWithAssociations(ctx, models.CreateLinkRequest{
		Name:   &name,
		URL:    &url,
		UserID: &user,
		IDArea: models.SlotOf(2),
	})
	if err != nil {
		fmt.Printf("Ошибка создания: %v\n", err)
		return
	}

	view, _ := svc.GetLinkWithAssociations(ctx, created.ID)
	fmt.Printf("ID ссылки: %d\n", created.ID)
	fmt.Printf("Владелец: %s\n", view.Status.UserID)
	fmt.Printf("Публичная: %t\n", view.Status.IsPublic)
	fmt.Printf("Область: %d\n", view.Classification.IDArea.Value)
	fmt.Printf("Категория задана: %t\n", view.Classification.IDCat.Valid)

	// Output:
	// ID ссылки: 1
	// Владелец: user-123
	// Публичная: true
	// Область: 2
	// Категория задана: false
}

// ExampleService_GetList демонстрирует чтение списка вместе со ссылками
func ExampleService_GetList() {
	svc := service.NewService(store.NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	listName, linkName := "Чтение", "Статья"
	list, _ := svc.CreateList(ctx, models.ListInput{Name: &listName}, "user-123")
	link, _ := svc.CreateLinkWithAssociations(ctx, models.CreateLinkRequest{Name: &linkName})
	svc.AddListItem(ctx, models.ListItemInput{IDList: list.ID, IDSrc: link.ID})

	view, err := svc.GetList(ctx, list.ID)
	if err != nil {
		fmt.Printf("Ошибка чтения: %v\n", err)
		return
	}

	fmt.Printf("Список: %s\n", view.Name)
	fmt.Printf("Ссылок: %d\n", len(view.Links))
	fmt.Printf("Первая ссылка: %s\n", view.Links[0].Name)

	// Output:
	// Список: Чтение
	// Ссылок: 1
	// Первая ссылка: Статья
}
