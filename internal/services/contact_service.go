package services

import (
	"fmt"

	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/pkg/mailer"
	"boutique/pkg/rabbitmq"

	"github.com/rs/zerolog/log"
)

// ContactService persists contact-form submissions and drives the outbound
// email pipeline: an admin notification plus a confirmation to the sender.
type ContactService struct {
	repo       repositories.ContactRepository
	mail       mailer.Mailer
	mqClient   *rabbitmq.Client
	adminEmail string
}

// NewContactService creates a new ContactService. mail and mqClient may be
// nil; sending and event publication are then skipped.
func NewContactService(repo repositories.ContactRepository, mail mailer.Mailer, mqClient *rabbitmq.Client, adminEmail string) *ContactService {
	return &ContactService{
		repo:       repo,
		mail:       mail,
		mqClient:   mqClient,
		adminEmail: adminEmail,
	}
}

// Submit stores the submission, then sends the two pipeline emails. The
// record is kept even when a send fails; the caller sees the mail error.
func (s *ContactService) Submit(contact *models.Contact) error {
	if err := s.repo.Create(contact); err != nil {
		return err
	}

	if s.mail != nil {
		adminBody := fmt.Sprintf(
			"<h2>New Contact Form Submission</h2>"+
				"<p><strong>Name:</strong> %s</p>"+
				"<p><strong>Email:</strong> %s</p>"+
				"<p><strong>Subject:</strong> %s</p>"+
				"<p><strong>Message:</strong> %s</p>",
			contact.Name, contact.Email, contact.Subject, contact.Message)
		if err := s.mail.Send(s.adminEmail, "New Contact Form Submission: "+contact.Subject, adminBody); err != nil {
			return fmt.Errorf("failed to notify admin: %w", err)
		}

		userBody := fmt.Sprintf(
			"<h2>Thank You, %s!</h2>"+
				"<p>We have received your message with the subject: <strong>%s</strong>.</p>"+
				"<p><strong>Your Message:</strong> %s</p>"+
				"<p>Our team will get back to you soon.</p>",
			contact.Name, contact.Subject, contact.Message)
		if err := s.mail.Send(contact.Email, "Thank You for Contacting Us", userBody); err != nil {
			return fmt.Errorf("failed to send confirmation: %w", err)
		}
	}

	if s.mqClient != nil {
		event := rabbitmq.ContactEvent{
			ContactID: contact.ID,
			Name:      contact.Name,
			Email:     contact.Email,
			Subject:   contact.Subject,
		}
		if err := s.mqClient.PublishContactEvent(event); err != nil {
			log.Warn().Err(err).Str("contact_id", contact.ID).
				Msg("failed to publish contact event")
		}
	}

	return nil
}

// List returns all submissions, newest first.
func (s *ContactService) List() ([]models.Contact, error) {
	return s.repo.GetAll()
}

// CountContacts returns the number of stored submissions.
func (s *ContactService) CountContacts() (int64, error) {
	return s.repo.Count()
}
