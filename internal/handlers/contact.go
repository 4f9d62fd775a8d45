package handlers

import (
	"errors"
	"net/http"

	"musyoka.dev/internal/contact"
	"musyoka.dev/internal/logging"
	"musyoka.dev/internal/services"
	"musyoka.dev/internal/templates"
)

// ContactHandler handles the contact form
type ContactHandler struct {
	contactService *contact.Service
	pages          *PageHandler
}

// NewContactHandler creates a new ContactHandler. A nil service makes the
// form report that messaging is unavailable.
func NewContactHandler(cs *contact.Service, pages *PageHandler) *ContactHandler {
	return &ContactHandler{contactService: cs, pages: pages}
}

// Submit handles POST /contact. HTMX requests get the form fragment back;
// plain form posts get the whole page.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	sub := contact.Submission{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Message: r.PostForm.Get("message"),
	}
	form := templates.ContactFormData{
		Name:    sub.Name,
		Email:   sub.Email,
		Message: sub.Message,
	}

	status := http.StatusOK
	if h.contactService == nil {
		form.Failure = "Sorry, messaging is unavailable right now. Please use email instead."
		status = http.StatusServiceUnavailable
	} else if _, err := h.contactService.Submit(r.Context(), sub); err != nil {
		var fieldErrs contact.FieldErrors
		if errors.As(err, &fieldErrs) {
			form.Errors = fieldErrs
			status = http.StatusUnprocessableEntity
		} else {
			logging.Error().Err(err).Msg("Failed to handle contact submission")
			form.Failure = "Sorry, there was an error sending your message. Please try again later."
			status = http.StatusInternalServerError
		}
	} else {
		form = templates.ContactFormData{Success: "Thank you for your message! I'll get back to you soon."}
	}

	data := h.pages.pageDataFor(services.ViewState{Category: "all"})
	data.Contact = form

	if r.Header.Get("HX-Request") == "true" {
		// htmx only swaps 2xx responses
		h.pages.render(w, http.StatusOK, "fragment_contact_form.html", data)
		return
	}
	h.pages.render(w, status, "index.html", data)
}
