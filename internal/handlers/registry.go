package handlers

// AppHandlers holds every handler in the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	JobHandler          *JobHandler
	ProposalHandler     *ProposalHandler
	NotificationHandler *NotificationHandler
}
