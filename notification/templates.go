package notification

import (
	"bytes"
	"denuncias/models"
	"fmt"
	"html/template"
	"time"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<p>Estimado/a {{.Name}},</p>
<p>Hemos recibido su denuncia con éxito.</p>
<p>Detalles de su denuncia:</p>
<ul>
  <li><strong>ID de Seguimiento:</strong> #{{.PublicID}}</li>
  <li><strong>Título:</strong> {{.Title}}</li>
  <li><strong>Dirección del Incidente:</strong> {{.Address}}, {{.District}}</li>
  <li><strong>Fecha de Ingreso:</strong> {{.Date}}</li>
  <li><strong>Estado Inicial:</strong> {{.Status}}</li>
</ul>
<p>Puede hacer seguimiento al estado de su denuncia utilizando el ID de seguimiento #{{.PublicID}} en nuestra plataforma.</p>
<p>Saludos cordiales,<br>Dirección de Obras Municipales</p>
`))

var assignmentTmpl = template.Must(template.New("assignment").Parse(`<p>Estimado/a {{.Name}},</p>
<p>Se le ha asignado una nueva denuncia para su gestión:</p>
<ul>
  <li><strong>ID de Denuncia:</strong> #{{.ID}}</li>
  <li><strong>Título:</strong> {{.Title}}</li>
  <li><strong>Dirección:</strong> {{.Address}}, {{.District}}</li>
  {{- if .Notes}}
  <li><strong>Notas:</strong> {{.Notes}}</li>
  {{- end}}
</ul>
<p>Por favor, acceda a la plataforma para revisar los detalles.</p>
<p>Saludos cordiales,<br>Plataforma de Denuncias DOM</p>
`))

// ComplaintConfirmation renders the receipt sent to a reporter after creation.
func ComplaintConfirmation(c *models.Complaint, reporter *models.Reporter, status string) (*models.Notification, error) {
	name := reporter.Email
	if full := models.FullName(reporter.FirstName, reporter.LastName, reporter.SecondLastName); full != "" && full != models.AnonymousName {
		name = full
	}
	var publicID any = c.ID
	subject := fmt.Sprintf("Confirmación de Recepción de Denuncia #%d", c.ID)
	if c.PublicID != nil {
		publicID = *c.PublicID
		subject = fmt.Sprintf("Confirmación de Recepción de Denuncia #%d", *c.PublicID)
	}

	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, map[string]any{
		"Name":     name,
		"PublicID": publicID,
		"Title":    c.Title,
		"Address":  c.Address,
		"District": c.District,
		"Date":     c.CreatedAt.Format("02-01-2006"),
		"Status":   status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render confirmation: %w", err)
	}
	return &models.Notification{
		Kind:        models.NotificationComplaintConfirmation,
		ComplaintID: c.ID,
		Recipient:   reporter.Email,
		Subject:     subject,
		Body:        buf.String(),
		QueuedAt:    time.Now().UTC(),
	}, nil
}

// InspectorAssignment renders the notice sent to an inspector when a complaint is assigned.
func InspectorAssignment(c *models.Complaint, inspector *models.StaffUser, notes string) (*models.Notification, error) {
	var buf bytes.Buffer
	err := assignmentTmpl.Execute(&buf, map[string]any{
		"Name":     inspector.FullName(),
		"ID":       c.ID,
		"Title":    c.Title,
		"Address":  c.Address,
		"District": c.District,
		"Notes":    notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render assignment: %w", err)
	}
	return &models.Notification{
		Kind:        models.NotificationInspectorAssignment,
		ComplaintID: c.ID,
		Recipient:   inspector.Email,
		Subject:     fmt.Sprintf("Nueva Denuncia Asignada: #%d", c.ID),
		Body:        buf.String(),
		QueuedAt:    time.Now().UTC(),
	}, nil
}
