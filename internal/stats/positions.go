package stats

import (
	"github.com/pitchlens/pitchlens/internal/dataset"
	"github.com/pitchlens/pitchlens/internal/model"
)

// Positions analyses employment and board-seat records against the
// company roster: who works at the dataset's companies, who sits on
// their boards, and how the two sets overlap.
func (a *Analyzer) Positions(res *dataset.Result) *model.PositionReport {
	positions := res.Table(model.TablePersonPositionRel)
	board := res.Table(model.TablePersonBoardSeatRel)
	companies := res.Table(model.TableCompany)
	if positions == nil && board == nil {
		return nil
	}

	out := &model.PositionReport{}
	var companyIDs map[string]struct{}
	if companies != nil {
		companyIDs = companies.IDSet(model.ColCompanyID)
	}

	personNames := make(map[string]string)
	if persons := res.Table(model.TablePerson); persons != nil {
		idx := indexByID(persons, model.ColPersonID)
		for id, row := range idx {
			personNames[id] = persons.Value(row, model.ColFullName)
		}
	}

	positionPersons := make(map[string]struct{})
	if positions != nil {
		out.TotalPositions = positions.Len()
		for r := range positions.Rows {
			if !contains(companyIDs, positions.Value(r, model.ColEntityID)) {
				continue
			}
			out.PositionsAtCompanies++
			if id := positions.Value(r, model.ColPersonID); id != "" {
				positionPersons[id] = struct{}{}
			}
		}
		out.UniquePositionPersons = len(positionPersons)

		// Every position held by the companies' people, wherever held
		byPerson := newCounter()
		entityTypes := newCounter()
		for r := range positions.Rows {
			id := positions.Value(r, model.ColPersonID)
			if !contains(positionPersons, id) {
				continue
			}
			byPerson.Add(id, personNames[id])
			entityTypes.Add(positions.Value(r, model.ColEntityType), "")
		}
		out.EntityTypeDist = entityTypes.Items(0)
		out.TopByPositions = byPerson.Ranked(a.cfg.Analysis.TopN)
	}

	boardPersons := make(map[string]struct{})
	if board != nil {
		out.TotalBoardSeats = board.Len()
		bySeat := newCounter()
		for r := range board.Rows {
			if !contains(companyIDs, board.Value(r, model.ColCompanyID)) {
				continue
			}
			id := board.Value(r, model.ColPersonID)
			if id == "" {
				continue
			}
			boardPersons[id] = struct{}{}
			bySeat.Add(id, personNames[id])
		}
		out.UniqueBoardPersons = len(boardPersons)
		out.TopBoardSeats = bySeat.Ranked(a.cfg.Analysis.TopN)
	}

	for id := range positionPersons {
		if contains(boardPersons, id) {
			out.EmployeeBoardMembers++
		} else {
			out.OnlyEmployees++
		}
	}
	for id := range boardPersons {
		if !contains(positionPersons, id) {
			out.OnlyBoardMembers++
		}
	}
	return out
}
