package handlers

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/vasudha-connect/kinshipbackend/repository"
)

type ExportHandler struct {
	Repo repository.PersonRepositoryInterface
}

var exportHeader = []string{
	"ID", "Name", "Surname", "Maiden Name", "Family", "Gender", "Marital Status",
	"Father ID", "Father Name", "Mother ID", "Mother Name", "Spouse ID", "Spouse Name",
	"Birth Month", "Birth Year", "Is Deceased", "Death Date", "Description", "Created At",
}

// ExportPeople streams every person record as a CSV download for offline
// record keeping.
func (eh *ExportHandler) ExportPeople(w http.ResponseWriter, r *http.Request) {
	people, err := eh.Repo.ListAll()
	if err != nil {
		log.Printf("Error loading people for export: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "store_failure", "Failed to retrieve people")
		return
	}

	filename := fmt.Sprintf("vasudha_connect_export_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		log.Printf("Error writing export header: %v", err)
		return
	}

	for i := range people {
		p := &people[i]
		row := []string{
			p.ID, p.Name, p.Surname, p.MaidenName, deref(p.Family), p.Gender, p.MaritalStatus,
			deref(p.FatherID), deref(p.FatherName), deref(p.MotherID), deref(p.MotherName),
			deref(p.SpouseID), deref(p.SpouseName),
			deref(p.BirthMonth), deref(p.BirthYear),
			strconv.FormatBool(p.IsDeceased), deref(p.DeathDate), deref(p.Description),
			p.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			log.Printf("Error writing export row for %s: %v", p.ID, err)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("Error flushing export: %v", err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
