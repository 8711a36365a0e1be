package controller

import (
	"github.com/gofiber/fiber/v2"

	"taxsurvey_backend/internals/features/survey/catalog"
	"taxsurvey_backend/internals/features/survey/wizard"
	helper "taxsurvey_backend/internals/helpers"
)

func (sc *SurveyController) GetRoleSpecific(c *fiber.Ctx) error {
	sess, err := sc.session(c)
	if err != nil {
		return retryError(c, nil, err)
	}
	st := wizard.Load(sess)
	if ok, redir := guardStep(c, st, StepRoleSpecific); !ok {
		return redir
	}

	role := st.Role()
	options := fiber.Map{}
	if role == catalog.RoleLegal || role == catalog.RoleBoth {
		options["lp1"] = catalog.LP1Options
		options["lp_levels"] = catalog.LPChallengeLevels
		options["lp2_functions"] = catalog.LP2Functions
		options["lp3_functions"] = catalog.LP3Functions
		options["lp4_functions"] = catalog.LP4Functions
		options["lp7_problems"] = catalog.LP7CommonProblems
		options["lp7_max"] = catalog.LP7MaxSelections
	}
	if role == catalog.RoleCustoms || role == catalog.RoleBoth {
		options["ca1"] = catalog.CA1Options
		options["ca2"] = catalog.CA2Options
		options["ca3_levels"] = catalog.CA3ChallengeLevels
		options["ca3_functions"] = catalog.CA3Functions
		options["ca4_levels"] = catalog.CA4EffectivenessLevels
		options["ca4_processes"] = catalog.CA4Processes
		options["ca5"] = catalog.CA5Options
		options["ca6"] = catalog.CA6Options
		options["ca7_challenges"] = catalog.CA7ProcedureChallenges
		options["ca9"] = catalog.CA9Options
	}

	return renderStep(c, StepRoleSpecific, fiber.Map{
		"role":    role,
		"answers": st.RoleSpecificAnswers,
		"options": options,
	})
}

func (sc *SurveyController) PostRoleSpecific(c *fiber.Ctx) error {
	sess, err := sc.session(c)
	if err != nil {
		return retryError(c, nil, err)
	}
	st := wizard.Load(sess)
	if ok, redir := guardStep(c, st, StepRoleSpecific); !ok {
		return redir
	}

	bucket, errs := wizard.ValidateRoleSpecific(st.Role(), helper.ParseForm(c))
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	st.RoleSpecificAnswers = bucket
	if ok, err := saveState(c, sess, st); !ok {
		return err
	}
	return advance(c, "/survey/cross-system-perspectives")
}
