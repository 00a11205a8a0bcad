package main

import (
	"context"
	"log"
	"log/slog"

	"campusnet/internal/config"
	"campusnet/internal/database"
	"campusnet/internal/models"
	"campusnet/internal/repository"
	"campusnet/internal/service"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting database seeding...")

	db, err := database.NewMySQLDB(
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
	)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	postRepo := repository.NewPostRepository(db)

	notifier := service.NewNotificationService(notificationRepo, userRepo, nil)
	friendships := service.NewFriendshipService(friendshipRepo, userRepo, notifier)
	posts := service.NewPostService(postRepo, userRepo, notifier)

	slog.Info("Creating initial users...")

	seedUsers := []struct {
		fullName string
		email    string
		curso    string
		periodo  int
	}{
		{"Ana Souza", "ana@campusnet.dev", "Engenharia de Software", 3},
		{"Bruno Lima", "bruno@campusnet.dev", "Ciência da Computação", 5},
		{"Carla Mendes", "carla@campusnet.dev", "Sistemas de Informação", 1},
	}

	created := make([]*models.User, 0, len(seedUsers))
	for _, data := range seedUsers {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
		user := &models.User{
			FullName:     data.fullName,
			Email:        data.email,
			Curso:        data.curso,
			Periodo:      data.periodo,
			PasswordHash: string(hashed),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			slog.Warn("User might already exist", "email", data.email, "error", err)
			continue
		}
		slog.Info("Created user", "email", data.email, "id", user.ID)
		created = append(created, user)
	}

	if len(created) < 3 {
		slog.Info("Skipping relationship seeding, users already present")
		return
	}
	ana, bruno, carla := created[0], created[1], created[2]

	slog.Info("Creating sample relationships...")

	if f, err := friendships.Request(ctx, ana.ID, bruno.ID); err != nil {
		slog.Warn("Failed to create friendship request", "error", err)
	} else if _, err := friendships.Accept(ctx, f.ID, bruno.ID); err != nil {
		slog.Warn("Failed to accept friendship", "error", err)
	}
	if _, err := friendships.Request(ctx, carla.ID, ana.ID); err != nil {
		slog.Warn("Failed to create pending request", "error", err)
	}

	slog.Info("Creating sample posts...")

	post, err := posts.CreatePost(ctx, ana.ID, &models.CreatePostRequest{
		Content: "Primeira semana de aulas concluída!",
	})
	if err != nil {
		slog.Warn("Failed to create sample post", "error", err)
	} else {
		if err := posts.Like(ctx, bruno.ID, post.ID); err != nil {
			slog.Warn("Failed to like sample post", "error", err)
		}
		if _, err := posts.AddComment(ctx, bruno.ID, post.ID, &models.CreateCommentRequest{
			Content: "Parabéns! 🎉",
		}); err != nil {
			slog.Warn("Failed to comment on sample post", "error", err)
		}
	}

	slog.Info("Database seeding completed successfully!")
}
