// Package wizard holds the multi-step survey state machine: the session-backed
// State value object and the per-step validators. Handlers load the prior
// State, validate input against the option catalog, and persist the next
// State; nothing touches the database before final submission.
package wizard

import (
	"errors"
	"log"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2/middleware/session"

	"taxsurvey_backend/internals/features/survey/catalog"
)

// Session bucket keys. Buckets are stored as JSON strings so the session
// layer never sees framework-specific types.
const (
	KeySurveyStarted       = "survey_started"
	KeyRespondentInfo      = "respondent_info"
	KeyGenericAnswers      = "generic_answers"
	KeyRoleSpecific        = "role_specific_answers"
	KeyCrossSystem         = "cross_system_answers"
	KeyFinalRemarks        = "final_remarks"
	KeyFinalRemarksSavedAt = "final_remarks_saved_at"
	KeyReferenceNumber     = "reference_number"
)

// Session size guard. Free-text answers across six steps can bloat the
// session blob; past the hard ceiling the write is refused and non-essential
// buckets are dropped so the session can recover.
const (
	SessionWarnBytes = 48 * 1024
	SessionMaxBytes  = 64 * 1024
)

var ErrSessionTooLarge = errors.New("session data too large")

var bucketKeys = []string{
	KeyRespondentInfo, KeyGenericAnswers, KeyRoleSpecific, KeyCrossSystem,
}

// State is the full wizard state for one browser session.
type State struct {
	SurveyStarted       bool
	RespondentInfo      map[string]any
	GenericAnswers      map[string]any
	RoleSpecificAnswers map[string]any
	CrossSystemAnswers  map[string]any
	FinalRemarks        string
	FinalRemarksSavedAt string
	ReferenceNumber     string
}

// Load rebuilds the State from the session. Corrupt bucket JSON resets that
// bucket to empty with a warning; it never fails the request.
func Load(sess *session.Session) *State {
	st := &State{}
	st.SurveyStarted, _ = sess.Get(KeySurveyStarted).(bool)
	st.RespondentInfo = decodeBucket(sess, KeyRespondentInfo)
	st.GenericAnswers = decodeBucket(sess, KeyGenericAnswers)
	st.RoleSpecificAnswers = decodeBucket(sess, KeyRoleSpecific)
	st.CrossSystemAnswers = decodeBucket(sess, KeyCrossSystem)
	st.FinalRemarks = getString(sess, KeyFinalRemarks)
	st.FinalRemarksSavedAt = getString(sess, KeyFinalRemarksSavedAt)
	st.ReferenceNumber = getString(sess, KeyReferenceNumber)
	return st
}

// Save writes the State back to the session, enforcing the size guard first.
// Over the hard ceiling nothing from this State is written: the session is
// trimmed down to the reference number and the caller gets
// ErrSessionTooLarge to surface as a retryable error.
func (st *State) Save(sess *session.Session) error {
	size := st.EstimatedSize()
	if size > SessionMaxBytes {
		log.Printf("[ERROR] session %s over size limit (%d bytes), trimming non-essential data", sess.ID(), size)
		st.trimNonEssential(sess)
		return ErrSessionTooLarge
	}
	if size > SessionWarnBytes {
		log.Printf("[WARN] session %s approaching size limit: %d bytes", sess.ID(), size)
	}

	sess.Set(KeySurveyStarted, st.SurveyStarted)
	setBucket(sess, KeyRespondentInfo, st.RespondentInfo)
	setBucket(sess, KeyGenericAnswers, st.GenericAnswers)
	setBucket(sess, KeyRoleSpecific, st.RoleSpecificAnswers)
	setBucket(sess, KeyCrossSystem, st.CrossSystemAnswers)
	setString(sess, KeyFinalRemarks, st.FinalRemarks)
	setString(sess, KeyFinalRemarksSavedAt, st.FinalRemarksSavedAt)
	setString(sess, KeyReferenceNumber, st.ReferenceNumber)
	return nil
}

// ClearExceptReference wipes every wizard key but keeps the reference number
// for the confirmation page.
func (st *State) ClearExceptReference(sess *session.Session) {
	for _, key := range bucketKeys {
		sess.Delete(key)
	}
	sess.Delete(KeySurveyStarted)
	sess.Delete(KeyFinalRemarks)
	sess.Delete(KeyFinalRemarksSavedAt)
	if st.ReferenceNumber != "" {
		sess.Set(KeyReferenceNumber, st.ReferenceNumber)
	}
}

func (st *State) trimNonEssential(sess *session.Session) {
	st.ClearExceptReference(sess)
}

// EstimatedSize approximates the serialized session footprint.
func (st *State) EstimatedSize() int {
	size := 0
	for _, bucket := range []map[string]any{
		st.RespondentInfo, st.GenericAnswers, st.RoleSpecificAnswers, st.CrossSystemAnswers,
	} {
		if len(bucket) == 0 {
			continue
		}
		if raw, err := sonic.Marshal(bucket); err == nil {
			size += len(raw)
		}
	}
	return size + len(st.FinalRemarks) + len(st.FinalRemarksSavedAt) + len(st.ReferenceNumber)
}

// Roles returns the professional roles recorded at step 2.
func (st *State) Roles() []string {
	raw, ok := st.RespondentInfo["professional_roles"]
	if !ok {
		return nil
	}
	return ToStringList(raw)
}

// Role collapses the role tags into the branch selector: legal, customs,
// both, or empty when step 2 has not been completed.
func (st *State) Role() string {
	roles := st.Roles()
	hasLegal, hasCustoms := false, false
	for _, r := range roles {
		switch r {
		case catalog.RoleLegal:
			hasLegal = true
		case catalog.RoleCustoms:
			hasCustoms = true
		}
	}
	switch {
	case hasLegal && hasCustoms:
		return catalog.RoleBoth
	case hasLegal:
		return catalog.RoleLegal
	case hasCustoms:
		return catalog.RoleCustoms
	default:
		return ""
	}
}

/* ===============================
   Bucket codec
=================================*/

func decodeBucket(sess *session.Session, key string) map[string]any {
	v := sess.Get(key)
	if v == nil {
		return map[string]any{}
	}
	var raw []byte
	switch t := v.(type) {
	case string:
		raw = []byte(t)
	case []byte:
		raw = t
	case map[string]any:
		return t
	default:
		log.Printf("[WARN] unexpected session value type for %s, resetting bucket", key)
		return map[string]any{}
	}
	if len(raw) == 0 {
		return map[string]any{}
	}
	out := map[string]any{}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		log.Printf("[WARN] invalid JSON in session bucket %s, resetting to empty: %v", key, err)
		return map[string]any{}
	}
	return out
}

func setBucket(sess *session.Session, key string, bucket map[string]any) {
	if len(bucket) == 0 {
		sess.Delete(key)
		return
	}
	raw, err := sonic.Marshal(bucket)
	if err != nil {
		log.Printf("[ERROR] marshal session bucket %s: %v", key, err)
		return
	}
	sess.Set(key, string(raw))
}

func getString(sess *session.Session, key string) string {
	s, _ := sess.Get(key).(string)
	return s
}

func setString(sess *session.Session, key, value string) {
	if value == "" {
		sess.Delete(key)
		return
	}
	sess.Set(key, value)
}

// ToStringList coerces a decoded JSON value ([]any or []string) to []string.
func ToStringList(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// ToStringMap coerces a decoded JSON value to map[string]string, parsing
// JSON-shaped text defensively: a parse failure resets to empty rather than
// failing the caller.
func ToStringMap(v any) map[string]string {
	switch t := v.(type) {
	case map[string]string:
		return t
	case map[string]any:
		out := make(map[string]string, len(t))
		for k, e := range t {
			if s, ok := e.(string); ok {
				out[k] = s
			}
		}
		return out
	case string:
		out := map[string]string{}
		if t == "" {
			return out
		}
		if err := sonic.Unmarshal([]byte(t), &out); err != nil {
			log.Printf("[WARN] invalid JSON-shaped value, resetting to empty map: %v", err)
			return map[string]string{}
		}
		return out
	default:
		return map[string]string{}
	}
}
