package mailer

import (
	"fmt"
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func priorityColor(p domain.ComplaintPriority) string {
	switch p {
	case domain.PriorityHigh:
		return "#e74c3c"
	case domain.PriorityMedium:
		return "#f39c12"
	default:
		return "#27ae60"
	}
}

// WelcomeEmail renders the registration greeting sent to a new user.
func WelcomeEmail(userEmail, userName string) Message {
	body := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <h2 style="color: #333;">Welcome, %s!</h2>
        <p>Thank you for registering with our Complaint Management System.</p>
        <p>You can now submit complaints and track their progress.</p>
        <div style="background-color: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
          <h3 style="margin-top: 0; color: #555;">Getting Started</h3>
          <ul>
            <li>Submit new complaints through the complaint form</li>
            <li>Track the status of your submitted complaints</li>
            <li>Receive updates on complaint progress</li>
          </ul>
        </div>
        <p style="color: #666; font-size: 14px;">
          If you have any questions, please contact our support team.
        </p>
      </div>
    `, userName)

	return Message{
		To:       userEmail,
		Subject:  "Welcome to Complaint Management System",
		HTMLBody: body,
	}
}

// NewComplaintEmail renders the notice sent to the admin address when a
// complaint is submitted.
func NewComplaintEmail(complaint domain.Complaint, adminEmail string) Message {
	body := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <h2 style="color: #333;">New Complaint Submitted</h2>
        <div style="background-color: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
          <h3 style="margin-top: 0; color: #555;">%s</h3>
          <p><strong>Category:</strong> %s</p>
          <p><strong>Priority:</strong> <span style="color: %s;">%s</span></p>
          <p><strong>Description:</strong></p>
          <p style="background-color: white; padding: 15px; border-radius: 5px; border-left: 4px solid #3498db;">
            %s
          </p>
          <p><strong>Date Submitted:</strong> %s</p>
        </div>
        <p style="color: #666; font-size: 14px;">
          Please review and take appropriate action on this complaint.
        </p>
      </div>
    `,
		complaint.Title,
		complaint.Category,
		priorityColor(complaint.Priority),
		complaint.Priority,
		complaint.Description,
		complaint.DateSubmitted.Format(time.RFC1123),
	)

	return Message{
		To:       adminEmail,
		Subject:  fmt.Sprintf("New Complaint: %s", complaint.Title),
		HTMLBody: body,
	}
}

// StatusUpdateEmail renders the notice sent to the admin address after a
// status change. oldStatus is whatever the updating handler read before it
// wrote; it is not guaranteed consistent under concurrent updates.
func StatusUpdateEmail(complaint domain.Complaint, adminEmail string, oldStatus domain.ComplaintStatus) Message {
	body := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <h2 style="color: #333;">Complaint Status Updated</h2>
        <div style="background-color: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
          <h3 style="margin-top: 0; color: #555;">%s</h3>
          <p><strong>Previous Status:</strong> <span style="color: #e74c3c;">%s</span></p>
          <p><strong>New Status:</strong> <span style="color: #27ae60;">%s</span></p>
          <p><strong>Category:</strong> %s</p>
          <p><strong>Priority:</strong> %s</p>
          <p><strong>Date Updated:</strong> %s</p>
        </div>
        <p style="color: #666; font-size: 14px;">
          The complaint status has been successfully updated.
        </p>
      </div>
    `,
		complaint.Title,
		oldStatus,
		complaint.Status,
		complaint.Category,
		complaint.Priority,
		time.Now().Format(time.RFC1123),
	)

	return Message{
		To:       adminEmail,
		Subject:  fmt.Sprintf("Complaint Status Updated: %s", complaint.Title),
		HTMLBody: body,
	}
}
