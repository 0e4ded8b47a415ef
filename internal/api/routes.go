package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/TaiyoMatsuda/board-app/internal/api/handler/v1"
)

// Access is who may call a route. Anything but AccessPublic needs a valid
// token. The finer levels are checked by the services.
type Access string

const (
	AccessPublic         Access = "public"
	AccessAuthenticated  Access = "authenticated"
	AccessGuide          Access = "guide"
	AccessOrganizer      Access = "organizer"
	AccessOrganizerStaff Access = "organizer or staff"
	AccessOwnerStaff     Access = "owner or staff"
	AccessSelf           Access = "self"
)

func (a Access) requiresToken() bool {
	return a != AccessPublic
}

type route struct {
	method  string
	path    string
	access  Access
	handler gin.HandlerFunc
}

type handlers struct {
	auth        *v1.AuthHandler
	user        *v1.UserHandler
	event       *v1.EventHandler
	comment     *v1.CommentHandler
	participant *v1.ParticipantHandler
}

func (h handlers) routes() []route {
	return []route{
		{http.MethodPost, "/auth/signup", AccessPublic, h.auth.HandleSignup},
		{http.MethodPost, "/auth/login", AccessPublic, h.auth.HandleLogin},

		{http.MethodGet, "/events", AccessPublic, h.event.HandleListEvents},
		{http.MethodPost, "/events", AccessGuide, h.event.HandleCreateEvent},
		{http.MethodGet, "/events/:eventID", AccessPublic, h.event.HandleGetEvent},
		{http.MethodPatch, "/events/:eventID", AccessOrganizer, h.event.HandleUpdateEvent},
		{http.MethodDelete, "/events/:eventID", AccessOrganizerStaff, h.event.HandleDeleteEvent},
		{http.MethodPut, "/events/:eventID/image", AccessOrganizer, h.event.HandleUploadEventImage},

		{http.MethodGet, "/events/:eventID/comments", AccessPublic, h.comment.HandleListComments},
		{http.MethodPost, "/events/:eventID/comments", AccessAuthenticated, h.comment.HandleCreateComment},
		{http.MethodPatch, "/events/:eventID/comments/:commentID/status", AccessOwnerStaff, h.comment.HandleMarkCommentEdited},
		{http.MethodDelete, "/events/:eventID/comments/:commentID", AccessOwnerStaff, h.comment.HandleDeleteComment},

		{http.MethodGet, "/events/:eventID/participants", AccessPublic, h.participant.HandleListParticipants},
		{http.MethodPost, "/events/:eventID/participants", AccessAuthenticated, h.participant.HandleJoinEvent},
		{http.MethodPatch, "/events/:eventID/participants/join", AccessAuthenticated, h.participant.HandleRejoinEvent},
		{http.MethodPatch, "/events/:eventID/participants/cancel", AccessAuthenticated, h.participant.HandleCancelParticipation},

		{http.MethodGet, "/users/:userID", AccessPublic, h.user.HandleGetUser},
		{http.MethodPatch, "/users/:userID", AccessSelf, h.user.HandleUpdateUser},
		{http.MethodDelete, "/users/:userID", AccessSelf, h.user.HandleDeleteUser},
		{http.MethodGet, "/users/:userID/read", AccessPublic, h.user.HandleReadUser},
		{http.MethodGet, "/users/:userID/shortname", AccessPublic, h.user.HandleGetShortName},
		{http.MethodGet, "/users/:userID/email", AccessSelf, h.user.HandleGetEmail},
		{http.MethodPatch, "/users/:userID/email", AccessSelf, h.user.HandleUpdateEmail},
		{http.MethodPut, "/users/:userID/icon", AccessSelf, h.user.HandleUploadIcon},
		{http.MethodGet, "/users/:userID/organizedEvents", AccessPublic, h.event.HandleListOrganizedEvents},
		{http.MethodGet, "/users/:userID/joinedEvents", AccessPublic, h.event.HandleListJoinedEvents},
	}
}
