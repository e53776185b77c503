package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kwazyyy/whereto-sub001/internal/service"
)

type Server struct {
	mx            *chi.Mux
	userService   service.UserServiceI
	badgesService service.BadgesServiceI
	savesService  service.SavesServiceI
	listsService  service.CuratedListsServiceI
	socialService service.SocialServiceI
	placesService service.PlacesServiceI
	jwtService    JWTServiceI
}

type ServicesList struct {
	UserService   service.UserServiceI
	BadgesService service.BadgesServiceI
	SavesService  service.SavesServiceI
	ListsService  service.CuratedListsServiceI
	SocialService service.SocialServiceI
	PlacesService service.PlacesServiceI
	JwtService    JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	if servicesOptions == nil {
		log.Fatal("on server provided nil services list")
	}
	s := &Server{
		mx:            chi.NewMux(),
		userService:   servicesOptions.UserService,
		badgesService: servicesOptions.BadgesService,
		savesService:  servicesOptions.SavesService,
		listsService:  servicesOptions.ListsService,
		socialService: servicesOptions.SocialService,
		placesService: servicesOptions.PlacesService,
		jwtService:    servicesOptions.JwtService,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Post("/waitlist", s.JoinWaitlist)
		r.Get("/creators", s.ListCreators)
		r.Get("/places/photo", s.GetPlacePhoto)

		// Unified save surface: authenticated callers work against their
		// account rows, everyone else against their anonymous namespace
		r.Group(func(r chi.Router) {
			r.Use(s.OptionalAuthMiddleware, s.AnonClientMiddleware, s.LoggerExtensionMiddleware)
			r.Post("/saves", s.SavePlace)
			r.Get("/saves", s.ListSaves)
			r.Get("/saves/{placeID}", s.IsPlaceSaved)
			r.Delete("/saves/{placeID}", s.RemoveSave)
			r.Get("/recommendations/unseen-count", s.UnseenRecommendationCount)
		})

		// Anonymous client state: per-intent skip sets and prefs
		r.Group(func(r chi.Router) {
			r.Use(s.AnonClientMiddleware)
			r.Get("/skips/{intent}", s.GetSkips)
			r.Put("/skips/{intent}", s.PutSkips)
			r.Delete("/skips/{intent}", s.ClearSkips)
			r.Get("/prefs", s.GetPrefs)
			r.Put("/prefs", s.PutPrefs)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Get("/user", s.GetUser)
			r.Get("/profile/check-username", s.CheckUsername)
			r.Patch("/creators/me", s.UpdateCreatorProfile)
			r.Post("/badges/check", s.CheckBadges)
			r.Get("/badges", s.GetBadges)
			r.Post("/visits", s.RecordVisit)
			r.Post("/curated-lists", s.CreateCuratedList)
			r.Get("/curated-lists/mine", s.GetMyCuratedLists)
			r.Post("/curated-lists/{id}/items", s.AddCuratedListItem)
			r.Delete("/curated-lists/{id}/items/{itemID}", s.RemoveCuratedListItem)
			r.Post("/friends/{id}/request", s.RequestFriend)
			r.Post("/friends/{id}/accept", s.AcceptFriend)
			r.Get("/friends/{id}/saves", s.GetFriendSaves)
			r.Post("/recommendations", s.SendRecommendation)
			r.Delete("/recommendations/{id}", s.DeleteRecommendation)
		})
	})
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.mx)
}

// Handler exposes the routed mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mx
}
