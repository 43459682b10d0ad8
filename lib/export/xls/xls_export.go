package xlsexport

import (
	"bytes"
	dbmodels "collab-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportApplicants(positionTitle string, list []dbmodels.ApplicantExt) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const sheetName = "Кандидаты"

var applicantHeaders = []string{"Имя пользователя", "О себе", "GitHub", "GitLab", "Bitbucket", "LinkedIn", "Статус", "Дата отклика"}

func (i impl) ExportApplicants(positionTitle string, list []dbmodels.ApplicantExt) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := f.GetSheetName(0)
	row := 0
	if positionTitle != "" {
		row++
		if err := writeCell(f, sheet, 1, row, positionTitle); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования названия позиции в xlsx")
		}
	}
	row, err := writeHeader(f, sheet, row, applicantHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		if err = writeApplicants(f, sheet, list, row); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = f.SetSheetName(sheet, sheetName); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа в xlsx")
	}
	return f.WriteToBuffer()
}

func writeApplicants(f *excelize.File, sheet string, list []dbmodels.ApplicantExt, row int) error {
	if err := applyDataStyle(f, sheet, 1, row+1, len(applicantHeaders), row+len(list)); err != nil {
		return err
	}
	for _, item := range list {
		row++
		values := []interface{}{
			item.Username,
			item.Bio,
			item.GithubURL,
			item.GitlabURL,
			item.BitbucketURL,
			item.LinkedinURL,
			string(item.Status),
			item.CreatedAt.Format("02.01.2006 15:04"),
		}
		for idx, value := range values {
			if err := writeCell(f, sheet, idx+1, row, value); err != nil {
				return err
			}
		}
	}
	return nil
}
