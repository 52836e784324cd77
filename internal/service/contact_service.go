package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/seido-dojo/portal-api/internal/dto"
	"github.com/seido-dojo/portal-api/internal/models"
	appErrors "github.com/seido-dojo/portal-api/pkg/errors"
)

// ContactService composes and appends contact-detail change requests.
type ContactService struct {
	requests  requestStore
	validator *validator.Validate
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
}

// NewContactService constructs a ContactService.
func NewContactService(requests requestStore, validate *validator.Validate, logger *zap.Logger, location *time.Location) *ContactService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}
	return &ContactService{
		requests:  requests,
		validator: validate,
		logger:    logger,
		location:  location,
		now:       time.Now,
	}
}

// Submit validates and appends one contact update request for the member.
func (s *ContactService) Submit(ctx context.Context, member *models.SessionClaims, payload dto.ContactUpdatePayload) (*dto.SubmitResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contact update payload")
	}

	var phone string
	switch payload.UpdateType {
	case models.UpdateTypePhone:
		normalized, ok := normalizePhone(payload.Phone)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "phone must be exactly 10 digits starting with 0")
		}
		phone = normalized
	case models.UpdateTypeAddress:
		addressFields := []struct {
			name  string
			value string
		}{
			{"addr1", payload.Addr1},
			{"addr2", payload.Addr2},
			{"suburb", payload.Suburb},
			{"postcode", payload.PostCode},
		}
		for _, field := range addressFields {
			if strings.TrimSpace(field.value) == "" {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must not be empty", field.name))
			}
		}
	case models.UpdateTypeEmail:
		if strings.TrimSpace(payload.Email) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "email must not be empty")
		}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("update type must be one of: %s, %s, %s",
				models.UpdateTypePhone, models.UpdateTypeAddress, models.UpdateTypeEmail))
	}

	header, err := s.requests.Header(ctx)
	if err != nil {
		return nil, err
	}

	sheet := models.Table{Headers: header}
	structured := sheet.HasColumns(models.ContactColumns...)

	timestamp := s.now().In(s.location).Format(models.TimestampLayout)
	name := strings.TrimSpace(payload.Name)

	row := models.Row{
		models.ColTimestamp:    timestamp,
		models.ColRequestEmail: member.Email,
		models.ColRequestID:    member.MemberID,
		models.ColRequestType:  models.RequestTypeContact,
		models.ColStatus:       models.StatusNew,
		models.ColHandledBy:    "",
		models.ColAdminNotes:   "",
	}

	if structured {
		row[models.ColMessage] = ""
		for _, col := range models.ContactColumns {
			row[col] = ""
		}
		row[models.ColUpdateType] = payload.UpdateType
		row[models.ColUpdateName] = name
		switch payload.UpdateType {
		case models.UpdateTypePhone:
			row[models.ColUpdatePhone] = phone
		case models.UpdateTypeAddress:
			row[models.ColAddr1] = strings.TrimSpace(payload.Addr1)
			row[models.ColAddr2] = strings.TrimSpace(payload.Addr2)
			row[models.ColSuburb] = strings.TrimSpace(payload.Suburb)
			row[models.ColPostCode] = strings.TrimSpace(payload.PostCode)
		case models.UpdateTypeEmail:
			row[models.ColUpdateEmail] = strings.TrimSpace(payload.Email)
		}
	} else {
		row[models.ColMessage] = s.foldMessage(payload, name, phone)
	}

	if err := s.requests.Append(ctx, header, row); err != nil {
		return nil, err
	}

	s.logger.Info("contact update appended",
		zap.String("member_id", member.MemberID),
		zap.String("update_type", payload.UpdateType),
		zap.Bool("structured", structured))

	return &dto.SubmitResponse{
		RequestType: models.RequestTypeContact,
		Status:      models.StatusNew,
		Timestamp:   timestamp,
		Structured:  structured,
	}, nil
}

func (s *ContactService) foldMessage(payload dto.ContactUpdatePayload, name, phone string) string {
	parts := []string{"Contact update", "Type: " + payload.UpdateType, "Name: " + name}
	switch payload.UpdateType {
	case models.UpdateTypePhone:
		parts = append(parts, "Phone: "+phone)
	case models.UpdateTypeAddress:
		parts = append(parts,
			"Addr1: "+strings.TrimSpace(payload.Addr1),
			"Addr2: "+strings.TrimSpace(payload.Addr2),
			"Suburb: "+strings.TrimSpace(payload.Suburb),
			"PostCode: "+strings.TrimSpace(payload.PostCode))
	case models.UpdateTypeEmail:
		parts = append(parts, "Email: "+strings.TrimSpace(payload.Email))
	}
	return strings.Join(parts, " | ")
}

// normalizePhone accepts exactly 10 digits starting with 0 (separators
// stripped) and reformats them as 4-3-3 groups.
func normalizePhone(raw string) (string, bool) {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ' || r == '-':
			// separators are tolerated on input
		default:
			return "", false
		}
	}

	d := digits.String()
	if len(d) != 10 || d[0] != '0' {
		return "", false
	}

	return d[0:4] + " " + d[4:7] + " " + d[7:10], true
}
