package extract

import (
	"github.com/liciel-tools/missionscope/pkg/missions"
	"github.com/liciel-tools/missionscope/pkg/xmldoc"
)

// Column tags of Table_General_Bien.xml.
const (
	tagFolderID = "LiColonne_Mission_Num_Dossier"

	tagOrderingHeading    = "LiColonne_DOrdre_Entete"
	tagOrderingName       = "LiColonne_DOrdre_Nom"
	tagOrderingAddress    = "LiColonne_DOrdre_Adresse1"
	tagOrderingDepartment = "LiColonne_DOrdre_Departement"
	tagOrderingCommune    = "LiColonne_DOrdre_Commune"

	tagOwnerHeading    = "LiColonne_Prop_Entete"
	tagOwnerName       = "LiColonne_Prop_Nom"
	tagOwnerAddress    = "LiColonne_Prop_Adresse1"
	tagOwnerDepartment = "LiColonne_Prop_Departement"
	tagOwnerCommune    = "LiColonne_Prop_Commune"

	tagPropertyAddress     = "LiColonne_Immeuble_Adresse1"
	tagPropertyDepartment  = "LiColonne_Immeuble_Departement"
	tagPropertyCommune     = "LiColonne_Immeuble_Commune"
	tagPropertyLot         = "LiColonne_Immeuble_Lot"
	tagPropertyNature      = "LiColonne_Immeuble_Nature_bien"
	tagPropertyType        = "LiColonne_Immeuble_Type_bien"
	tagPropertyCategory    = "LiColonne_Immeuble_Type_Dossier"
	tagPropertyDescription = "LiColonne_Immeuble_Description"

	tagScheduledBits = "LiColonne_Mission_Missions_programmees"
	tagVisitDate     = "LiColonne_Mission_Date_Visite"
	tagReportDate    = "LiColonne_Mission_Date_Rapport"

	tagOperatorFamilyName = "LiColonne_Gen_Nom_operateur_UniquementNomFamille"
	tagOperatorGivenName  = "LiColonne_Gen_Nom_operateur_UniquementPreNom"
	tagCertifyingBody     = "LiColonne_Gen_certif_societe"
	tagCertification      = "LiColonne_Gen_num_certif"
)

// conclusionChain selects the conclusion text; older exports wrap it
// differently and some put it directly in the root element.
var conclusionChain = []xmldoc.Lookup{
	xmldoc.Tag("Conclusion"),
	xmldoc.Tag("LiColonne_Conclusion"),
	xmldoc.Tag("Conclusions"),
	xmldoc.Self(),
}

func missionFromBien(doc *xmldoc.Document, folderName string) *missions.Mission {
	v := doc.Value

	folderID := v(tagFolderID)
	if folderID == "" {
		folderID = folderName
	}

	bits := v(tagScheduledBits)

	return &missions.Mission{
		FolderID:      folderID,
		OrderingParty: party(v(tagOrderingHeading), v(tagOrderingName), v(tagOrderingAddress), v(tagOrderingDepartment), v(tagOrderingCommune)),
		Owner:         party(v(tagOwnerHeading), v(tagOwnerName), v(tagOwnerAddress), v(tagOwnerDepartment), v(tagOwnerCommune)),
		Property: missions.Property{
			Address:     v(tagPropertyAddress),
			Department:  v(tagPropertyDepartment),
			Commune:     v(tagPropertyCommune),
			Lot:         v(tagPropertyLot),
			Nature:      v(tagPropertyNature),
			Type:        v(tagPropertyType),
			Category:    v(tagPropertyCategory),
			Description: v(tagPropertyDescription),
		},
		Window: missions.Window{
			ScheduledBits: bits,
			ActiveTypes:   missions.DecodeBits(bits),
			VisitDate:     v(tagVisitDate),
			ReportDate:    v(tagReportDate),
		},
		Operator: missions.Operator{
			FamilyName:          v(tagOperatorFamilyName),
			GivenName:           v(tagOperatorGivenName),
			CertifyingBody:      v(tagCertifyingBody),
			CertificationNumber: v(tagCertification),
		},
	}
}

func party(heading, name, address, department, commune string) missions.Party {
	return missions.Party{
		Heading:     heading,
		Name:        name,
		DisplayName: missions.JoinName(heading, name),
		Address:     address,
		Department:  department,
		Commune:     commune,
	}
}
