package database

import (
	"github.com/Mrlaolu/luBoard/internal/database/models"
	"gorm.io/gorm"
)

func GetAllProblems(db *gorm.DB) ([]models.Problem, error) {
	var problems []models.Problem
	if err := db.Order("id asc").Find(&problems).Error; err != nil {
		return nil, err
	}
	return problems, nil
}

func GetAllTeams(db *gorm.DB) ([]models.Team, error) {
	var teams []models.Team
	if err := db.Order("id asc").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// GetAllSubmissions returns submissions in log order.
func GetAllSubmissions(db *gorm.DB) ([]models.Submission, error) {
	var subs []models.Submission
	if err := db.Order("seq asc, id asc").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// ReplaceContestLog wipes the stored log and writes the given records in one
// transaction.
func ReplaceContestLog(db *gorm.DB, problems []models.Problem, teams []models.Team, subs []models.Submission) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Submission{}, &models.Team{}, &models.Problem{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		if len(problems) > 0 {
			if err := tx.Create(&problems).Error; err != nil {
				return err
			}
		}
		if len(teams) > 0 {
			if err := tx.Create(&teams).Error; err != nil {
				return err
			}
		}
		if len(subs) > 0 {
			if err := tx.CreateInBatches(&subs, 500).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
