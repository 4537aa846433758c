package handlers

import (
	"errors"
	"strconv"

	"projectgate/internal/core/domain"
	"projectgate/internal/core/services"
	"projectgate/internal/pkg/pagination"
	"projectgate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles project endpoints. Gated fields flow through the
// entitlement service only.
type ProjectHandler struct {
	catalog     *services.CatalogService
	entitlement *services.EntitlementService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(catalog *services.CatalogService, entitlement *services.EntitlementService) *ProjectHandler {
	return &ProjectHandler{
		catalog:     catalog,
		entitlement: entitlement,
	}
}

// ProjectView is the public project payload. DemoURL and DownloadURL stay
// empty unless the gateway confirmed the caller's entitlement.
type ProjectView struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	HasAccess   bool    `json:"has_access"`
	DemoURL     string  `json:"demo_url,omitempty"`
	DownloadURL string  `json:"download_url,omitempty"`
}

func toProjectView(p *domain.Project, hasAccess bool, gated domain.GatedFields) *ProjectView {
	return &ProjectView{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		HasAccess:   hasAccess,
		DemoURL:     gated.DemoURL,
		DownloadURL: gated.DownloadURL,
	}
}

// List lists published projects
// @Summary List projects
// @Description List published projects (public, gated fields redacted)
// @Tags Projects
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	projects, total, err := h.catalog.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list projects")
	}

	result := make([]*ProjectView, 0, len(projects))
	for _, p := range projects {
		result = append(result, toProjectView(p, false, domain.GatedFields{}))
	}

	return response.Success(c, "Projects retrieved successfully", pagination.NewResponse(result, params, total))
}

// Get gets a project, with gated fields when the caller is entitled
// @Summary Get project
// @Description Get a project; demo/download URLs are included only for entitled callers
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}

	project, err := h.catalog.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to get project")
	}

	// userID is zero for anonymous callers; the gateway treats that as
	// no entitlement
	userID, _ := c.Locals("userID").(uint)

	gated, err := h.entitlement.ResolveGatedFields(c.Context(), userID, project)
	if err != nil {
		return response.InternalServerError(c, "Failed to resolve access")
	}

	hasAccess := gated != (domain.GatedFields{})

	return response.Success(c, "Project retrieved successfully", fiber.Map{
		"project": toProjectView(project, hasAccess, gated),
	})
}

// GetAccess returns the caller's entitlement for a project
// @Summary Get project access
// @Description Get the caller's entitlement and latest access request for a project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id}/access [get]
func (h *ProjectHandler) GetAccess(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid project ID")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return response.Unauthorized(c, "Unauthorized")
	}

	if _, err := h.catalog.GetByID(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to get project")
	}

	access, err := h.entitlement.ProjectAccess(c.Context(), userID, uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to resolve access")
	}

	payload := fiber.Map{
		"has_access": access.HasAccess,
	}
	if access.Request != nil {
		payload["access_request"] = access.Request.ToResponse()
	}

	return response.Success(c, "Access retrieved successfully", payload)
}
