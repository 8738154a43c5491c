// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package geo

// DefaultDepartmentCoords is the built-in department-name table used when
// a department-scoped cache file cannot be read. Approximate centroids;
// good enough for the map's department-level aggregation, and the
// enrichment jitter spreads points around them anyway.
var DefaultDepartmentCoords = Cache{
	"Ain":                     {Lat: 46.0667, Lng: 5.3333},
	"Aisne":                   {Lat: 49.5667, Lng: 3.6167},
	"Allier":                  {Lat: 46.3667, Lng: 3.1833},
	"Alpes-de-Haute-Provence": {Lat: 44.1000, Lng: 6.2333},
	"Hautes-Alpes":            {Lat: 44.6667, Lng: 6.3333},
	"Alpes-Maritimes":         {Lat: 43.9167, Lng: 7.1667},
	"Ardèche":                 {Lat: 44.7500, Lng: 4.4167},
	"Ardennes":                {Lat: 49.6167, Lng: 4.6333},
	"Ariège":                  {Lat: 42.9333, Lng: 1.5000},
	"Aube":                    {Lat: 48.3167, Lng: 4.1667},
	"Aude":                    {Lat: 43.0833, Lng: 2.4167},
	"Aveyron":                 {Lat: 44.2833, Lng: 2.6833},
	"Bouches-du-Rhône":        {Lat: 43.5283, Lng: 5.4497},
	"Calvados":                {Lat: 49.0833, Lng: -0.3667},
	"Cantal":                  {Lat: 45.0500, Lng: 2.6667},
	"Charente":                {Lat: 45.6667, Lng: 0.1667},
	"Charente-Maritime":       {Lat: 45.7500, Lng: -0.7500},
	"Cher":                    {Lat: 47.0833, Lng: 2.5000},
	"Corrèze":                 {Lat: 45.3333, Lng: 1.8667},
	"Corse-du-Sud":            {Lat: 41.9167, Lng: 8.9833},
	"Haute-Corse":             {Lat: 42.4167, Lng: 9.2167},
	"Côte-d'Or":               {Lat: 47.4167, Lng: 4.8333},
	"Côtes-d'Armor":           {Lat: 48.4333, Lng: -2.8667},
	"Creuse":                  {Lat: 46.0833, Lng: 2.0167},
	"Dordogne":                {Lat: 45.1667, Lng: 0.7500},
	"Doubs":                   {Lat: 47.1667, Lng: 6.3500},
	"Drôme":                   {Lat: 44.6833, Lng: 5.1667},
	"Eure":                    {Lat: 49.1167, Lng: 1.0000},
	"Eure-et-Loir":            {Lat: 48.4167, Lng: 1.3667},
	"Finistère":               {Lat: 48.2500, Lng: -4.0833},
	"Gard":                    {Lat: 43.9500, Lng: 4.1833},
	"Haute-Garonne":           {Lat: 43.3333, Lng: 1.1667},
	"Gers":                    {Lat: 43.6500, Lng: 0.4500},
	"Gironde":                 {Lat: 44.8333, Lng: -0.5833},
	"Hérault":                 {Lat: 43.5833, Lng: 3.3667},
	"Ille-et-Vilaine":         {Lat: 48.1500, Lng: -1.6500},
	"Indre":                   {Lat: 46.7667, Lng: 1.5833},
	"Indre-et-Loire":          {Lat: 47.2500, Lng: 0.7500},
	"Isère":                   {Lat: 45.2500, Lng: 5.5833},
	"Jura":                    {Lat: 46.6667, Lng: 5.6667},
	"Landes":                  {Lat: 43.9667, Lng: -0.7500},
	"Loir-et-Cher":            {Lat: 47.6167, Lng: 1.4167},
	"Loire":                   {Lat: 45.5833, Lng: 4.1667},
	"Haute-Loire":             {Lat: 45.0833, Lng: 3.8333},
	"Loire-Atlantique":        {Lat: 47.3333, Lng: -1.6667},
	"Loiret":                  {Lat: 47.9167, Lng: 2.2500},
	"Lot":                     {Lat: 44.6167, Lng: 1.6000},
	"Lot-et-Garonne":          {Lat: 44.3667, Lng: 0.4500},
	"Lozère":                  {Lat: 44.5167, Lng: 3.5000},
	"Maine-et-Loire":          {Lat: 47.4667, Lng: -0.5500},
	"Manche":                  {Lat: 49.0833, Lng: -1.3333},
	"Marne":                   {Lat: 48.9500, Lng: 4.3000},
	"Haute-Marne":             {Lat: 48.1167, Lng: 5.2333},
	"Mayenne":                 {Lat: 48.1500, Lng: -0.6500},
	"Meurthe-et-Moselle":      {Lat: 48.7000, Lng: 6.1667},
	"Meuse":                   {Lat: 48.9833, Lng: 5.3833},
	"Morbihan":                {Lat: 47.8333, Lng: -2.8333},
	"Moselle":                 {Lat: 49.0333, Lng: 6.6667},
	"Nièvre":                  {Lat: 47.1167, Lng: 3.5000},
	"Nord":                    {Lat: 50.4500, Lng: 3.2167},
	"Oise":                    {Lat: 49.4167, Lng: 2.4167},
	"Orne":                    {Lat: 48.6167, Lng: 0.1333},
	"Pas-de-Calais":           {Lat: 50.4833, Lng: 2.2833},
	"Puy-de-Dôme":             {Lat: 45.7667, Lng: 3.1333},
	"Pyrénées-Atlantiques":    {Lat: 43.2500, Lng: -0.7500},
	"Hautes-Pyrénées":         {Lat: 43.0500, Lng: 0.1667},
	"Pyrénées-Orientales":     {Lat: 42.6000, Lng: 2.5333},
	"Bas-Rhin":                {Lat: 48.6667, Lng: 7.5500},
	"Haut-Rhin":               {Lat: 47.8667, Lng: 7.2667},
	"Rhône":                   {Lat: 45.8667, Lng: 4.6500},
	"Haute-Saône":             {Lat: 47.6333, Lng: 6.0833},
	"Saône-et-Loire":          {Lat: 46.6500, Lng: 4.5333},
	"Sarthe":                  {Lat: 47.9833, Lng: 0.2167},
	"Savoie":                  {Lat: 45.4667, Lng: 6.4333},
	"Haute-Savoie":            {Lat: 46.0333, Lng: 6.4167},
	"Paris":                   {Lat: 48.8566, Lng: 2.3522},
	"Seine-Maritime":          {Lat: 49.6500, Lng: 1.0333},
	"Seine-et-Marne":          {Lat: 48.6000, Lng: 2.9333},
	"Yvelines":                {Lat: 48.8167, Lng: 1.8333},
	"Deux-Sèvres":             {Lat: 46.5333, Lng: -0.3167},
	"Somme":                   {Lat: 49.9167, Lng: 2.2667},
	"Tarn":                    {Lat: 43.7833, Lng: 2.1667},
	"Tarn-et-Garonne":         {Lat: 44.0833, Lng: 1.3833},
	"Var":                     {Lat: 43.4667, Lng: 6.2167},
	"Vaucluse":                {Lat: 44.0000, Lng: 5.1667},
	"Vendée":                  {Lat: 46.6667, Lng: -1.3333},
	"Vienne":                  {Lat: 46.5667, Lng: 0.4667},
	"Haute-Vienne":            {Lat: 45.8833, Lng: 1.2333},
	"Vosges":                  {Lat: 48.2000, Lng: 6.3833},
	"Yonne":                   {Lat: 47.8333, Lng: 3.5667},
	"Territoire de Belfort":   {Lat: 47.6333, Lng: 6.8667},
	"Essonne":                 {Lat: 48.5167, Lng: 2.2500},
	"Hauts-de-Seine":          {Lat: 48.8500, Lng: 2.2000},
	"Seine-Saint-Denis":       {Lat: 48.9167, Lng: 2.4667},
	"Val-de-Marne":            {Lat: 48.7833, Lng: 2.4667},
	"Val-d'Oise":              {Lat: 49.0833, Lng: 2.1667},
	"Guadeloupe":              {Lat: 16.2500, Lng: -61.5833},
	"Martinique":              {Lat: 14.6500, Lng: -61.0167},
	"Guyane":                  {Lat: 4.0000, Lng: -53.0000},
	"La Réunion":              {Lat: -21.1333, Lng: 55.5333},
	"Mayotte":                 {Lat: -12.8333, Lng: 45.1667},
}
