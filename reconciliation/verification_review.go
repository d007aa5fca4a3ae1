package reconciliation

import (
	"context"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/pdcgo/treasury_service/treasury_core"
	"github.com/pdcgo/treasury_service/treasury_iface"
	"github.com/pdcgo/treasury_service/treasury_model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VerificationReview resolves a flagged count. The reviewer must be a
// different user than the one who counted. Approval books one corrective
// adjustment for the discrepancy the count exposed, a rejection keeps the
// flag open with the review notes attached.
func (r *reconServiceImpl) VerificationReview(
	ctx context.Context,
	req *connect.Request[treasury_iface.VerificationReviewRequest],
) (*connect.Response[treasury_iface.VerificationReviewResponse], error) {
	var err error
	result := treasury_iface.VerificationReviewResponse{}
	pay := req.Msg

	agent := r.auth.AuthIdentityFromHeader(req.Header()).Identity()

	db := r.db.WithContext(ctx)

	if !pay.Approve {
		err = db.Transaction(func(tx *gorm.DB) error {
			verification, err := r.lockVerification(tx, pay.VerificationId, agent.IdentityID())
			if err != nil {
				return err
			}

			if verification.Status != treasury_model.VerificationFlagged {
				return &treasury_core.InvalidTransitionError{
					Entity: fmt.Sprintf("verification %d", verification.ID),
					From:   string(verification.Status),
					To:     string(treasury_model.VerificationFlagged),
				}
			}

			verification.ReviewedByID = agent.IdentityID()
			verification.ReviewNotes = pay.ReviewNotes
			verification.ReviewedAt = time.Now()
			err = tx.Save(verification).Error
			if err != nil {
				return err
			}

			result.Status = string(verification.Status)
			return nil
		})

		return connect.NewResponse(&result), err
	}

	err = treasury_core.OpenLedger(ctx, db, func(tx *gorm.DB, ledger treasury_core.LedgerManage) error {
		verification, err := r.lockVerification(tx, pay.VerificationId, agent.IdentityID())
		if err != nil {
			return err
		}

		if !verification.Status.CanTransition(treasury_model.VerificationApproved) {
			return &treasury_core.InvalidTransitionError{
				Entity: fmt.Sprintf("verification %d", verification.ID),
				From:   string(verification.Status),
				To:     string(treasury_model.VerificationApproved),
			}
		}

		// the physical count is the truth, shift the pool by the
		// discrepancy the count exposed
		delta := verification.Discrepancy
		if delta == 0 {
			return &treasury_core.PreconditionError{
				Reason: fmt.Sprintf("verification %d has no discrepancy to correct", verification.ID),
			}
		}

		verification.Status = treasury_model.VerificationApproved
		verification.ReviewedByID = agent.IdentityID()
		verification.ReviewNotes = pay.ReviewNotes
		verification.ReviewedAt = time.Now()
		err = tx.Save(verification).Error
		if err != nil {
			return err
		}

		ref := treasury_core.NewRefID(&treasury_core.RefData{
			RefType: treasury_core.VerificationRef,
			ID:      verification.ID,
		})

		apply := ledger.
			NewApplyEntry(agent.IdentityID()).
			Type(treasury_core.AdjustmentEntry).
			Ref(ref).
			Desc(fmt.Sprintf("%s count correction %+d for %s",
				verification.Pool, delta, verification.VerificationDate.Format("2006-01-02"))).
			Notes(pay.ReviewNotes)

		if delta > 0 {
			apply.To(verification.Pool, delta)
		} else {
			apply.From(verification.Pool, -delta)
		}

		err = apply.Commit().Err()
		if err != nil {
			return err
		}

		result.Status = string(verification.Status)
		result.EntryId = apply.Entry().ID
		return nil
	})

	return connect.NewResponse(&result), err
}

func (r *reconServiceImpl) lockVerification(tx *gorm.DB, id uint, reviewerID uint) (*treasury_model.DailyVerification, error) {
	var verification treasury_model.DailyVerification
	err := tx.
		Clauses(clause.Locking{
			Strength: "UPDATE",
		}).
		Model(&treasury_model.DailyVerification{}).
		First(&verification, id).
		Error

	if err != nil {
		return nil, err
	}

	if verification.VerifiedByID == reviewerID {
		return nil, &treasury_core.PreconditionError{
			Reason: "reviewer must differ from the verifying user",
		}
	}

	return &verification, nil
}
