// @title Whereto API
// @description API for the place-discovery app "Whereto"
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"
	"strconv"

	"github.com/Kwazyyy/whereto-sub001/internal/anonstore"
	"github.com/Kwazyyy/whereto-sub001/internal/api"
	"github.com/Kwazyyy/whereto-sub001/internal/repository"
	"github.com/Kwazyyy/whereto-sub001/internal/service"
	"github.com/Kwazyyy/whereto-sub001/pkg/cleanup"
	"github.com/Kwazyyy/whereto-sub001/pkg/config"
	jwtservice "github.com/Kwazyyy/whereto-sub001/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	pool := repository.NewPGPool(&dbCfg)

	redisDB, err := strconv.Atoi(cfg.GetStringOr("REDIS_DB", "0"))
	if err != nil {
		log.Fatal("invalid REDIS_DB value: " + err.Error())
	}
	anonStore := anonstore.New(
		cfg.GetStringOr("REDIS_ADDRESS", "localhost:6379"),
		cfg.GetString("REDIS_PASSWORD"),
		redisDB,
	)

	usersRepo := repository.NewUsersRepo(pool)
	savesRepo := repository.NewSavesRepo(pool)
	visitsRepo := repository.NewVisitsRepo(pool)
	badgesRepo := repository.NewBadgesRepo(pool)
	friendsRepo := repository.NewFriendsRepo(pool)
	recsRepo := repository.NewRecommendationsRepo(pool)
	listsRepo := repository.NewCuratedListsRepo(pool)
	waitlistRepo := repository.NewWaitlistRepo(pool)

	statsService := service.NewBadgeStatsService(savesRepo, visitsRepo, friendsRepo, recsRepo)
	serv := api.New(&api.ServicesList{
		UserService:   service.NewUserService(usersRepo),
		BadgesService: service.NewBadgesService(badgesRepo, statsService),
		SavesService:  service.NewSavesService(savesRepo, visitsRepo, anonStore),
		ListsService:  service.NewCuratedListsService(listsRepo),
		SocialService: service.NewSocialService(friendsRepo, recsRepo, savesRepo, waitlistRepo),
		PlacesService: service.NewPlacesService(cfg.GetString("PLACES_API_KEY")),
		JwtService:    jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err = serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
