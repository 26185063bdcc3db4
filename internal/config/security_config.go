// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// RequiredRole narrows an access-protected method to a role.
type RequiredRole int

const (
	RoleAny RequiredRole = iota
	RoleCandidate
	RoleReviewer // reviewers and admins
	RoleAdmin
)

// EndpointSecurity is the rule applied to one gRPC method
type EndpointSecurity struct {
	Level SecurityLevel
	Role  RequiredRole
}

var (
	public    = EndpointSecurity{Level: SecurityPublic}
	anyUser   = EndpointSecurity{Level: SecurityAccess, Role: RoleAny}
	candidate = EndpointSecurity{Level: SecurityAccess, Role: RoleCandidate}
	reviewer  = EndpointSecurity{Level: SecurityAccess, Role: RoleReviewer}
	admin     = EndpointSecurity{Level: SecurityAccess, Role: RoleAdmin}
)

// EndpointSecurityConfig maps methods to their required security level
var EndpointSecurityConfig = map[string]EndpointSecurity{
	// AuthService - Public
	"/recruiting.v1.AuthService/Signup": public,
	"/recruiting.v1.AuthService/Login":  public,

	// OrganizationService
	"/recruiting.v1.OrganizationService/ListOrganizations":  public,
	"/recruiting.v1.OrganizationService/GetOrganization":    public,
	"/recruiting.v1.OrganizationService/CreateOrganization": admin,
	"/recruiting.v1.OrganizationService/CreateSubteam":      admin,
	"/recruiting.v1.OrganizationService/AddMember":          admin,

	// CycleService
	"/recruiting.v1.CycleService/GetActiveCycle": anyUser,
	"/recruiting.v1.CycleService/ListCycles":     reviewer,
	"/recruiting.v1.CycleService/CreateCycle":    admin,
	"/recruiting.v1.CycleService/UpdateTimeline": admin,
	"/recruiting.v1.CycleService/ActivateCycle":  admin,

	// CatalogService
	"/recruiting.v1.CatalogService/ListQuestions":    anyUser,
	"/recruiting.v1.CatalogService/VisibleQuestions": anyUser,
	"/recruiting.v1.CatalogService/InsertQuestion":   admin,
	"/recruiting.v1.CatalogService/UpdateQuestion":   admin,
	"/recruiting.v1.CatalogService/RemoveQuestion":   admin,
	"/recruiting.v1.CatalogService/MoveQuestion":     admin,
	"/recruiting.v1.CatalogService/RepackQuestions":  admin,

	// ApplicationService
	"/recruiting.v1.ApplicationService/SaveDraft":          candidate,
	"/recruiting.v1.ApplicationService/SubmitApplication":  candidate,
	"/recruiting.v1.ApplicationService/ListMyApplications": candidate,
	"/recruiting.v1.ApplicationService/GetApplication":     anyUser,

	// ReviewService - reviewers only
	"/recruiting.v1.ReviewService/UpdateStatus":      reviewer,
	"/recruiting.v1.ReviewService/ListStatusHistory": reviewer,
	"/recruiting.v1.ReviewService/SetScore":          reviewer,
	"/recruiting.v1.ReviewService/ListScores":        reviewer,
	"/recruiting.v1.ReviewService/AddNote":           reviewer,
	"/recruiting.v1.ReviewService/DeleteNote":        reviewer,
	"/recruiting.v1.ReviewService/ListNotes":         reviewer,
	"/recruiting.v1.ReviewService/GetDashboard":      reviewer,

	// InterviewService
	"/recruiting.v1.InterviewService/CreateSlot":        reviewer,
	"/recruiting.v1.InterviewService/ScheduleInterview": reviewer,
	"/recruiting.v1.InterviewService/ListSlots":         reviewer,

	// ResumeService
	"/recruiting.v1.ResumeService/GetUploadUrl":  candidate,
	"/recruiting.v1.ResumeService/ConfirmUpload": candidate,
	"/recruiting.v1.ResumeService/DeleteResume":  candidate,

	// NotificationService
	"/recruiting.v1.NotificationService/GetNotifications":     anyUser,
	"/recruiting.v1.NotificationService/MarkNotificationRead": anyUser,
}

// GetSecurity returns the rule for a given method
func GetSecurity(method string) EndpointSecurity {
	if rule, exists := EndpointSecurityConfig[method]; exists {
		return rule
	}
	// Default to the strictest rule for unknown endpoints
	return admin
}
