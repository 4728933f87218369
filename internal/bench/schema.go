package bench

import (
	"github.com/VeldsparCrypto/SWSQLite/internal/action"
)

const benchTable = "people"

// schemaActions is the benchmark table, created the same way on every target.
func schemaActions() []action.Action {
	return []action.Action{
		action.CreateTable(benchTable),
		action.AddColumn(benchTable, "email", action.DataTypeString),
		action.AddColumn(benchTable, "age", action.DataTypeInteger),
		action.AddColumn(benchTable, "score", action.DataTypeDouble),
		action.AddColumn(benchTable, "avatar", action.DataTypeBlob),
		action.CreateIndex(benchTable, "age", false),
	}
}

// recreateSchema drops the benchmark table and creates it again.
func recreateSchema(t target) error {
	if _, err := t.exec("DROP TABLE IF EXISTS " + benchTable); err != nil {
		return err
	}

	for _, a := range schemaActions() {
		if _, err := t.exec(a.Statement()); err != nil {
			return err
		}
	}

	return nil
}

const insertPerson = "INSERT INTO people (_id_, _timestamp_, email, age, score, avatar) VALUES (?, ?, ?, ?, ?, ?)"

const selectPeople = "SELECT _id_, _timestamp_, email, age, score, avatar FROM people ORDER BY _timestamp_"
