package v1

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"contact-form-backend/internal/delivery/http/middleware"
	"contact-form-backend/internal/delivery/http/response"
	"contact-form-backend/internal/domain"
	"contact-form-backend/pkg/apperror"
	"contact-form-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	resultTemplate = "result.html"
	dateLayout     = "01/02/2006"

	rateLimitedMessage = "Too many submissions. Please wait a minute and try again."
)

var lineBreaker = strings.NewReplacer("\r\n", "<br>\r\n", "\n", "<br>\n")

// nl2br escapes s and inserts a <br> before every line break.
func nl2br(s string) template.HTML {
	return template.HTML(lineBreaker.Replace(template.HTMLEscapeString(s)))
}

// ResultTemplates parses the result page templates.
func ResultTemplates() *template.Template {
	return template.Must(template.New("").
		Funcs(template.FuncMap{"nl2br": nl2br}).
		ParseFS(templateFS, "templates/*.html"))
}

// resultPage is the view model of templates/result.html.
type resultPage struct {
	Submitted bool
	Success   bool
	Limited   bool
	Date      string
	Errors    []string
	Echo      *domain.ContactEcho
	FormURL   string
}

type ContactHandler struct {
	contactUC domain.ContactUsecase
	formURL   string
}

// NewContactHandler registers the HTML form handler on page and the JSON
// endpoint on api. Both submission routes draw from the same rate limit
// budget; the page route reports a rejection as a result page.
func NewContactHandler(page, api *gin.RouterGroup, contactUC domain.ContactUsecase, formURL string, limit middleware.RateLimitConfig) {
	handler := &ContactHandler{
		contactUC: contactUC,
		formURL:   formURL,
	}

	pageLimit := limit
	pageLimit.OnLimit = handler.RateLimited

	page.GET("/formHandler", handler.ShowForm)
	page.POST("/formHandler", middleware.RateLimitMiddleware(pageLimit), handler.HandleForm)

	api.POST("/contact", middleware.RateLimitMiddleware(limit), handler.SubmitContact)
}

// ShowForm renders the page shown when no form data was posted.
func (h *ContactHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, resultTemplate, resultPage{FormURL: h.formURL})
}

// RateLimited renders the result page for a submission rejected by the rate
// limiter.
func (h *ContactHandler) RateLimited(c *gin.Context) {
	c.HTML(http.StatusTooManyRequests, resultTemplate, resultPage{
		Submitted: true,
		Limited:   true,
		Errors:    []string{rateLimitedMessage},
		FormURL:   h.formURL,
	})
}

// HandleForm processes a form-encoded submission and renders the result page.
func (h *ContactHandler) HandleForm(c *gin.Context) {
	var form domain.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Log.Warn("malformed contact form",
			"request_id", response.RequestID(c),
			"error", err,
		)
		c.HTML(http.StatusBadRequest, resultTemplate, resultPage{
			Submitted: true,
			Errors:    []string{"The form submission could not be read. Please try again."},
			FormURL:   h.formURL,
		})
		return
	}

	result := h.contactUC.Submit(c.Request.Context(), form)

	c.HTML(statusFor(result), resultTemplate, resultPage{
		Submitted: true,
		Success:   result.Success,
		Date:      result.SubmittedAt.Format(dateLayout),
		Errors:    result.Errors,
		Echo:      result.Echo,
		FormURL:   h.formURL,
	})
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates the contact form, emails a confirmation to the sender and notifies the site administrator.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactForm  true  "Contact Form Data"
// @Success      200      {object}  response.Response{data=domain.ContactEcho}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var form domain.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result := h.contactUC.Submit(c.Request.Context(), form)

	switch result.State {
	case domain.ContactSucceeded:
		response.Success(c, http.StatusOK, "Your message has been sent successfully!", result.Echo)
	case domain.ContactValidationFailed:
		c.Error(apperror.Unprocessable("There were some issues with your submission", result.Errors))
	default:
		c.Error(apperror.BadGateway("Your message could not be delivered. Please try again later.", nil).
			WithDetails(result.Errors))
	}
}

func statusFor(result domain.ContactResult) int {
	switch result.State {
	case domain.ContactSucceeded:
		return http.StatusOK
	case domain.ContactValidationFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
